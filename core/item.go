package core

import "github.com/customer360/rankkit/pkg/utils"

// Item 是排序链路中的统一承载结构：一个被打分的候选（产品 / 文档 / 活动）。
// BaseScore 由打分规则产生，ContextBoost 是上下文加成；两者相加即最终排序分。
// Reasons 用于向用户解释“为什么推荐它”；Labels 用于观测与策略驱动。
type Item struct {
	ID           string
	BaseScore    float64
	ContextBoost float64
	Meta         map[string]any
	Reasons      []string
	Labels       map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:      id,
		Meta:    make(map[string]any),
		Reasons: make([]string, 0, 4),
		Labels:  make(map[string]utils.Label),
	}
}

// FinalScore 是最终排序分：BaseScore + ContextBoost。
// 纯函数：相同输入永远得到相同分数（抖动只发生在 rerank 的排序键上，不改分数）。
func (it *Item) FinalScore() float64 {
	return it.BaseScore + it.ContextBoost
}

// AddReason 追加一条 match reason；空串忽略。顺序即展示顺序。
func (it *Item) AddReason(reason string) {
	if reason == "" {
		return
	}
	it.Reasons = append(it.Reasons, reason)
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetMetaString 读取 Meta 中的字符串字段，缺失或类型不符返回空串。
func (it *Item) GetMetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta[key].(string); ok {
		return s
	}
	return ""
}
