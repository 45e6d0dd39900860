// Package rerank 实现排序结果上的多样性约束与截断。
package rerank

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/utils"
)

// GroupKeyFunc 从候选提取分组键（如品牌）。返回空串表示该候选不参与分组约束
//（例如品牌缺失的数据不一致候选，按中性处理）。
type GroupKeyFunc func(*core.Item) string

// MetaKey 返回一个从 Meta 字符串字段提取分组键的 GroupKeyFunc（统一小写）。
func MetaKey(name string) GroupKeyFunc {
	return func(it *core.Item) string {
		return strings.ToLower(it.GetMetaString(name))
	}
}

// Selector 是多样性选择器：在按最终分降序的候选上贪心挑选 TopN，
// 跳过分组键已出现的候选；当不同分组键耗尽时放宽约束凑满 N
//（仍然去重候选 ID），并明确标记 diversity_relaxed —— 绝不静默少给。
//
// 同一个 Selector 同时服务产品推荐（主键=品牌，次键=类别）
// 和可选的多样化检索结果（不设分组键即退化为纯 TopN）。
type Selector struct {
	// GroupKey 主分组约束（如品牌）；nil 表示无分组约束
	GroupKey GroupKeyFunc

	// SecondaryKey 次级分组约束（如类别）；可选
	SecondaryKey GroupKeyFunc

	// Jitter 平手抖动幅度（加到排序键上，不改分数）。
	// 0 表示关闭：平手按插入顺序（稳定排序），完全确定。
	// > 0 时必须配合 Seed 使用，同一 Seed 复现同一顺序。
	Jitter float64
	Seed   int64
}

// SelectTopN 返回有序 TopN 与“是否放宽了多样性约束”。
// 永远不返回重复的候选 ID；只要候选足够，返回条数恰为 min(n, 候选数)。
func (s *Selector) SelectTopN(items []*core.Item, n int) ([]*core.Item, bool) {
	if n <= 0 || len(items) == 0 {
		return nil, false
	}

	ordered := s.sortByScore(items)

	selected := make([]*core.Item, 0, n)
	usedID := make(map[string]bool, n)
	usedPrimary := make(map[string]bool, n)
	usedSecondary := make(map[string]bool, n)

	// 第一轮：严格多样性
	for _, it := range ordered {
		if len(selected) == n {
			break
		}
		if it == nil || usedID[it.ID] {
			continue
		}
		pk := applyKey(s.GroupKey, it)
		sk := applyKey(s.SecondaryKey, it)
		if pk != "" && usedPrimary[pk] {
			continue
		}
		if sk != "" && usedSecondary[sk] {
			continue
		}
		usedID[it.ID] = true
		if pk != "" {
			usedPrimary[pk] = true
		}
		if sk != "" {
			usedSecondary[sk] = true
		}
		selected = append(selected, it)
	}

	// 第二轮：分组键耗尽时放宽约束凑满 N（仍然去重 ID），并显式标记
	relaxed := false
	if len(selected) < n {
		for _, it := range ordered {
			if len(selected) == n {
				break
			}
			if it == nil || usedID[it.ID] {
				continue
			}
			usedID[it.ID] = true
			it.PutLabel("diversity_relaxed", utils.Label{Value: "true", Source: "rerank"})
			selected = append(selected, it)
			relaxed = true
		}
	}

	return selected, relaxed
}

// sortByScore 按最终分降序返回副本；平手按插入顺序（稳定排序），
// 或在配置了 Jitter 时按种子抖动后的排序键 —— 同一 Seed 复现同一顺序。
func (s *Selector) sortByScore(items []*core.Item) []*core.Item {
	ordered := make([]*core.Item, len(items))
	copy(ordered, items)

	var jitter map[*core.Item]float64
	if s.Jitter > 0 {
		rng := rand.New(rand.NewSource(s.Seed))
		jitter = make(map[*core.Item]float64, len(ordered))
		// 按输入顺序生成抖动，保证给定 Seed 完全可复现
		for _, it := range ordered {
			if it != nil {
				jitter[it] = (rng.Float64()*2 - 1) * s.Jitter
			}
		}
	}

	key := func(it *core.Item) float64 {
		if it == nil {
			return 0
		}
		k := it.FinalScore()
		if jitter != nil {
			k += jitter[it]
		}
		return k
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i] == nil {
			return false
		}
		if ordered[j] == nil {
			return true
		}
		return key(ordered[i]) > key(ordered[j])
	})
	return ordered
}

func applyKey(fn GroupKeyFunc, it *core.Item) string {
	if fn == nil {
		return ""
	}
	return fn(it)
}

// DiversityNode 是 Selector 的 Pipeline 形态。
// 放宽约束时在 rctx 上打 diversity_relaxed Label，供引擎回传给调用方。
type DiversityNode struct {
	Selector *Selector
	N        int
}

func (n *DiversityNode) Name() string        { return "rerank.diversity" }
func (n *DiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sel := n.Selector
	if sel == nil {
		sel = &Selector{GroupKey: MetaKey("brand"), SecondaryKey: MetaKey("category")}
	}

	selected, relaxed := sel.SelectTopN(items, n.N)
	if relaxed && rctx != nil {
		rctx.PutLabel("diversity_relaxed", utils.Label{Value: "true", Source: "rerank"})
	}
	return selected, nil
}
