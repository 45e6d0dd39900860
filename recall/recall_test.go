package recall

import (
	"context"
	"testing"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/store"
)

func TestCatalog_Recall(t *testing.T) {
	cat := store.NewMemoryCatalog()
	cat.PutProducts(
		&core.Product{ID: "P1", Name: "Submariner", Brand: "Rolex", Category: "dive", Price: 12000},
		&core.Product{ID: "P2", Name: "Mystery", Brand: "", Category: "dress", Price: 5000},
	)

	r := &Catalog{Products: cat}
	items, err := r.Recall(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	if items[0].GetMetaString("brand") != "Rolex" {
		t.Errorf("brand meta = %q", items[0].GetMetaString("brand"))
	}
	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != "catalog" {
		t.Error("recall_source label missing")
	}

	// 品牌缺失的产品照常进入候选集，只打告警 Label
	if _, ok := items[1].Labels["data_warning"]; !ok {
		t.Error("missing brand should carry data_warning label")
	}
}

func TestHot_RecallFromZSet(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "hot:docs", 30, "DOC_002")
	ms.ZAdd(ctx, "hot:docs", 50, "DOC_001")

	r := &Hot{Store: ms, Key: "hot:docs", IDs: []string{"DOC_FALLBACK"}}
	items, err := r.Recall(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != "DOC_001" {
		t.Errorf("got %v, want [DOC_001 DOC_002] by score", ids(items))
	}
}

func TestHot_FallbackToMemoryIDs(t *testing.T) {
	r := &Hot{IDs: []string{"DOC_A", "DOC_B"}}
	items, err := r.Recall(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if lbl, ok := items[0].Labels["recall_source"]; !ok || lbl.Value != "hot" {
		t.Error("recall_source label missing")
	}
}

type staticSource struct {
	name string
	ids  []string
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestFanout_MergeFirstDedups(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&staticSource{name: "a", ids: []string{"P1", "P2"}},
			&staticSource{name: "b", ids: []string{"P2", "P3"}},
		},
		Dedup:         true,
		MaxConcurrent: 1, // 串行执行保证顺序确定
	}

	items, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %v, want 3 distinct ids", ids(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestFanout_UnionKeepsDuplicates(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&staticSource{name: "a", ids: []string{"P1"}},
			&staticSource{name: "b", ids: []string{"P1"}},
		},
		MergeStrategy: "union",
		MaxConcurrent: 1,
	}

	items, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("union should keep both, got %d", len(items))
	}
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
