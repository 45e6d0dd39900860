package recall

import (
	"context"

	"github.com/customer360/rankkit/core"
)

// Source 表示一个可复用的候选源（产品目录/热门文档/检索/...）。
// 你可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
