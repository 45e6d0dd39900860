package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误分类（与引擎对外契约一致）：
//   - NOT_FOUND：客户/产品/文档 ID 不存在，永远上抛，不得默认兜底
//   - INVALID_QUERY：空白检索词，在任何打分开始前上抛
//   - DATA_INCONSISTENCY：引用的实体字段缺失（如产品缺品牌），
//     打分按中性贡献处理并打 Label 告警，绝不致命
//   - 少于 N 条结果不是错误，不在此分类中
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_QUERY"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "search", "risk"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeInvalidQuery      = "INVALID_QUERY"      // 检索词为空/空白
	ErrorCodeDataInconsistency = "DATA_INCONSISTENCY" // 外键实体字段缺失
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeUnavailable       = "UNAVAILABLE"        // 服务不可用
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 输入无效
	ErrorCodeInternalError     = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleStore  = "store"  // 存储模块
	ModuleSearch = "search" // 检索模块
	ModuleMatch  = "match"  // 偏好匹配模块
	ModuleRisk   = "risk"   // 风险评估模块
	ModuleEngine = "engine" // 引擎编排模块
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsInvalidQuery 检查错误是否为 INVALID_QUERY。
func IsInvalidQuery(err error) bool {
	return hasCode(err, ErrorCodeInvalidQuery)
}

// IsDataInconsistency 检查错误是否为 DATA_INCONSISTENCY。
func IsDataInconsistency(err error) bool {
	return hasCode(err, ErrorCodeDataInconsistency)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}
