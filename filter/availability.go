package filter

import (
	"context"

	"github.com/customer360/rankkit/core"
)

// AvailabilityFilter 过滤不可售的产品：非 active 状态或无库存。
// 候选的 Meta 未携带产品对象时按保留处理（非产品候选不受此过滤约束）。
type AvailabilityFilter struct{}

func (f *AvailabilityFilter) Name() string { return "filter.availability" }

func (f *AvailabilityFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	p, ok := item.Meta["product"].(*core.Product)
	if !ok {
		return false, nil
	}
	return !p.Available(), nil
}
