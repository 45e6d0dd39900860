package rerank

import (
	"context"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在打分后截取前 N 个候选。
// 通常在 Rank 节点之后使用；需要多样性约束时用 DiversityNode 代替。
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	// 如果 N <= 0，则返回所有候选（不截断）
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
