package recall

import (
	"context"
	"encoding/json"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/utils"
)

// Hot 是热门候选源，支持从 Store 读取热门文档/产品 ID 列表。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按热度排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空，使用内存中的 IDs 作为 fallback
// 典型用途：看板在没有检索词时展示热门/近期条目。
type Hot struct {
	Store core.Store
	Key   string   // 存储 key，例如 "hot:documents"
	IDs   []string // fallback 内存列表
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	var ids []string

	// 优先从 Store 读取（支持 ZRange 或普通 Get）
	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			// 有序集合：ZRange 获取 TopN（例如 Top 100）
			members, err := kvStore.ZRange(ctx, r.Key, 0, 99)
			if err == nil && len(members) > 0 {
				ids = members
			}
		} else {
			// 普通 key：读取 JSON 数组
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// Fallback：使用内存 IDs
	if len(ids) == 0 {
		ids = r.IDs
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
