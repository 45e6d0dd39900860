package core

import "github.com/customer360/rankkit/pkg/utils"

// RecommendContext 承载一次请求的客户/场景/实时信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	CustomerID string
	Scene      string // 购物上下文标签，例如 "luxury"、"budget"；未识别的标签贡献零加成

	// Customer 是已解析的客户画像；由 engine 在进入 Pipeline 前装载。
	Customer *CustomerProfile

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	// 例如：risk_level=HIGH 会让偏好打分附加挽留加成。
	Labels map[string]utils.Label

	// Params 请求级上下文参数：query、type、tier、max_age_days、limit 等。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// GetParamString 读取 Params 中的字符串参数，缺失返回空串。
func (rctx *RecommendContext) GetParamString(key string) string {
	if rctx.Params == nil {
		return ""
	}
	if s, ok := rctx.Params[key].(string); ok {
		return s
	}
	return ""
}
