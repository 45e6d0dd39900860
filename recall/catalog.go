package recall

import (
	"context"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/utils"
)

// Catalog 是产品目录候选源：把整个目录装载为候选集，
// 可售性/已购排除交给后续的 Filter 阶段。
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Products core.ProductStore
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Catalog) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Products == nil {
		return nil, nil
	}

	products, err := r.Products.ListProducts(ctx)
	if err != nil {
		// 上游数据获取失败原样上抛（数据访问错误，不吞）
		return nil, err
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		it := core.NewItem(p.ID)
		it.Meta["product"] = p
		it.Meta["name"] = p.Name
		it.Meta["brand"] = p.Brand
		it.Meta["category"] = p.Category
		it.Meta["price"] = p.Price
		it.Meta["rating"] = p.Rating
		it.Meta["review_count"] = p.ReviewCount
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})

		// 品牌缺失属于数据不一致：打分按中性处理，这里只打 Label 告警
		if p.Brand == "" {
			it.PutLabel("data_warning", utils.Label{Value: "missing_brand", Source: "recall"})
		}
		out = append(out, it)
	}
	return out, nil
}
