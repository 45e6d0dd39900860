package filter

import (
	"context"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的过滤器：表达式求值为 true 的候选被过滤。
//
// 示例：
//   - `item.price > 50000.0` → 过滤超高价产品
//   - `label.data_warning != null` → 过滤带数据告警的候选
//   - `item.rating < 3.0 && item.review_count > 10` → 过滤口碑差的产品
type ExprFilter struct {
	// Expr 是 CEL 布尔表达式；空表达式不过滤任何候选
	Expr string
}

func NewExprFilter(expr string) *ExprFilter {
	return &ExprFilter{Expr: expr}
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
