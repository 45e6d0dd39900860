package search

import (
	"context"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/conv"
)

// RecallNode 是检索的 Pipeline 形态：从 rctx.Params 读取
// query / type / tier / max_age_days / limit，对 DocumentStore 做相关性检索。
// 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type RecallNode struct {
	Docs    core.DocumentStore
	Indexer *Indexer

	// DefaultLimit 是 Params 未给 limit 时的条数，默认 20。
	DefaultLimit int
}

func (n *RecallNode) Name() string        { return "recall.search" }
func (n *RecallNode) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (n *RecallNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return n.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (n *RecallNode) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if n.Docs == nil || rctx == nil {
		return nil, nil
	}

	ix := n.Indexer
	if ix == nil {
		ix = NewIndexer()
	}

	filters := Filters{
		Type:       rctx.GetParamString("type"),
		Tier:       rctx.GetParamString("tier"),
		MaxAgeDays: int(conv.ConfigGetInt64(rctx.Params, "max_age_days", 0)),
	}
	limit := int(conv.ConfigGetInt64(rctx.Params, "limit", 0))
	if limit <= 0 {
		limit = n.DefaultLimit
	}
	if limit <= 0 {
		limit = 20
	}

	docs, err := n.Docs.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	return ix.Search(ctx, docs, rctx.GetParamString("query"), filters, limit)
}
