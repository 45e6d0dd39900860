package pipeline

import (
	"context"

	"github.com/customer360/rankkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 候选加载阶段：从目录/文档源生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除已购/不可售/不符合约束的候选
	KindRank        Kind = "rank"        // 打分阶段：对候选做加权规则打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：多样性约束 / TopN 截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充展示字段或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便候选生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
