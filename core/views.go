package core

import "context"

// 数据读视图的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 引擎只读不写：所有实体由外部数据层装载/更新
//   - 上游数据获取失败原样上抛（数据访问错误区别于领域错误）

// CustomerStore 是客户画像的读视图。
type CustomerStore interface {
	// GetCustomer 按 ID 解析客户画像；不存在时返回 NOT_FOUND（不得伪造中性画像）
	GetCustomer(ctx context.Context, customerID string) (*CustomerProfile, error)

	// GetOwnedProducts 获取客户已购产品 ID 集合（可能为空，空不是错误）
	GetOwnedProducts(ctx context.Context, customerID string) ([]string, error)
}

// ProductStore 是产品目录的读视图。
type ProductStore interface {
	// ListProducts 列出全部候选产品（含 status / stock，由 Filter 负责排除不可售）
	ListProducts(ctx context.Context) ([]*Product, error)
}

// DocumentStore 是文档/活动的读视图。
type DocumentStore interface {
	// ListDocuments 列出全部可检索的文档与活动
	ListDocuments(ctx context.Context) ([]*Document, error)
}
