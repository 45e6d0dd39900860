package match

import (
	"context"
	"sort"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/utils"
)

// Node 是偏好打分的 Pipeline 形态：对候选集中 Meta 携带产品的 item 打分并排序。
// 上下文标签取自 rctx.Scene，风险等级取自 rctx 的 risk_level Label。
type Node struct {
	Matcher *Matcher
}

func (n *Node) Name() string        { return "rank.match" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Node) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || rctx == nil || rctx.Customer == nil {
		return items, nil
	}

	m := n.Matcher
	if m == nil {
		m = NewMatcher()
	}

	mctx := Context{Tag: rctx.Scene}
	if lbl, ok := rctx.GetLabel("risk_level"); ok {
		mctx.RiskLevel = lbl.Value
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		p, ok := it.Meta["product"].(*core.Product)
		if !ok {
			// 非产品候选不打分（保持中性），只做标记
			it.PutLabel("data_warning", utils.Label{Value: "missing_product", Source: "rank"})
			continue
		}
		m.Score(rctx.Customer, p, mctx, it)
		it.PutLabel("rank_model", utils.Label{Value: "preference_rules", Source: "rank"})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].FinalScore() > items[j].FinalScore()
	})
	return items, nil
}
