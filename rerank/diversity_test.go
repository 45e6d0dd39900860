package rerank

import (
	"testing"

	"github.com/customer360/rankkit/core"
)

func scoredItem(id, brand, category string, score float64) *core.Item {
	it := core.NewItem(id)
	it.BaseScore = score
	it.Meta["brand"] = brand
	it.Meta["category"] = category
	return it
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSelector_NoDuplicateGroupKeys(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 99),
		scoredItem("P2", "Rolex", "dress", 95),
		scoredItem("P3", "Omega", "chronograph", 90),
		scoredItem("P4", "Seiko", "dive", 80),
		scoredItem("P5", "Tudor", "dive", 70),
	}

	selected, relaxed := sel.SelectTopN(items, 3)
	if relaxed {
		t.Error("enough distinct brands, should not relax")
	}
	if len(selected) != 3 {
		t.Fatalf("got %d items, want 3", len(selected))
	}
	seen := map[string]bool{}
	for _, it := range selected {
		b := it.GetMetaString("brand")
		if seen[b] {
			t.Errorf("duplicate brand %s in selection %v", b, ids(selected))
		}
		seen[b] = true
	}
	// 最高分的 Rolex 入选，次高分的 Rolex 被跳过
	if selected[0].ID != "P1" {
		t.Errorf("top = %s, want P1", selected[0].ID)
	}
	if selected[1].ID != "P3" || selected[2].ID != "P4" {
		t.Errorf("selection = %v, want [P1 P3 P4]", ids(selected))
	}
}

// 分组键耗尽时放宽约束凑满 N，放宽挑入的候选被显式标记。
func TestSelector_RelaxedFillsToN(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 99),
		scoredItem("P2", "Rolex", "dress", 95),
		scoredItem("P3", "Rolex", "sport", 90),
		scoredItem("P4", "Omega", "chronograph", 80),
		scoredItem("P5", "Omega", "dress", 70),
	}

	selected, relaxed := sel.SelectTopN(items, 5)
	if !relaxed {
		t.Error("only two distinct brands, should relax")
	}
	if len(selected) != 5 {
		t.Fatalf("got %d items, want min(5, 5) = 5", len(selected))
	}

	// 放宽阶段挑入的候选带 diversity_relaxed 标记；第一轮挑入的不带
	strict := map[string]bool{"P1": true, "P4": true}
	for _, it := range selected {
		_, labeled := it.Labels["diversity_relaxed"]
		if strict[it.ID] && labeled {
			t.Errorf("%s selected in strict pass but labeled relaxed", it.ID)
		}
		if !strict[it.ID] && !labeled {
			t.Errorf("%s selected in relaxed pass but not labeled", it.ID)
		}
	}
}

func TestSelector_NeverDuplicatesIDs(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand"), SecondaryKey: MetaKey("category")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 99),
		scoredItem("P1", "Rolex", "dive", 99), // 上游去重失败的重复候选
		scoredItem("P2", "Omega", "dress", 90),
	}

	selected, _ := sel.SelectTopN(items, 3)
	seen := map[string]bool{}
	for _, it := range selected {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s in %v", it.ID, ids(selected))
		}
		seen[it.ID] = true
	}
	if len(selected) != 2 {
		t.Errorf("got %d items, want 2 distinct", len(selected))
	}
}

func TestSelector_FewerCandidatesThanN(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 99),
		scoredItem("P2", "Omega", "dress", 90),
	}

	selected, _ := sel.SelectTopN(items, 10)
	if len(selected) != 2 {
		t.Errorf("got %d items, want min(10, 2) = 2", len(selected))
	}
}

// 次级分组键：同品牌不同类别仍受类别约束。
func TestSelector_SecondaryKey(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand"), SecondaryKey: MetaKey("category")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 99),
		scoredItem("P2", "Seiko", "dive", 95),
		scoredItem("P3", "Omega", "chronograph", 90),
	}

	selected, _ := sel.SelectTopN(items, 2)
	if selected[0].ID != "P1" || selected[1].ID != "P3" {
		t.Errorf("selection = %v, want [P1 P3] (P2 shares category dive)", ids(selected))
	}
}

// 分组键为空串的候选不参与约束，按中性处理。
func TestSelector_EmptyGroupKeyIsNeutral(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}
	items := []*core.Item{
		scoredItem("P1", "", "dive", 99),
		scoredItem("P2", "", "dress", 95),
		scoredItem("P3", "Omega", "chronograph", 90),
	}

	selected, relaxed := sel.SelectTopN(items, 3)
	if relaxed {
		t.Error("empty keys never collide, should not relax")
	}
	if len(selected) != 3 {
		t.Errorf("got %d items, want 3", len(selected))
	}
}

// 无抖动时平手按插入顺序，两次调用产出完全一致。
func TestSelector_DeterministicTieBreak(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 90),
		scoredItem("P2", "Omega", "dress", 90),
		scoredItem("P3", "Seiko", "sport", 90),
	}

	a, _ := sel.SelectTopN(items, 3)
	b, _ := sel.SelectTopN(items, 3)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("run differs at %d: %v vs %v", i, ids(a), ids(b))
		}
	}
	if a[0].ID != "P1" || a[1].ID != "P2" || a[2].ID != "P3" {
		t.Errorf("tie-break order = %v, want input order", ids(a))
	}
}

// 同一 Seed 的抖动结果可复现。
func TestSelector_SeededJitterReproducible(t *testing.T) {
	items := func() []*core.Item {
		return []*core.Item{
			scoredItem("P1", "Rolex", "dive", 90),
			scoredItem("P2", "Omega", "dress", 90),
			scoredItem("P3", "Seiko", "sport", 90),
			scoredItem("P4", "Tudor", "dive", 90),
		}
	}

	s1 := &Selector{Jitter: 0.5, Seed: 42}
	s2 := &Selector{Jitter: 0.5, Seed: 42}
	a, _ := s1.SelectTopN(items(), 4)
	b, _ := s2.SelectTopN(items(), 4)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, ids(a), ids(b))
		}
	}
}

// 抖动只影响排序键，不改写候选分数。
func TestSelector_JitterDoesNotMutateScores(t *testing.T) {
	sel := &Selector{Jitter: 1.0, Seed: 7}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 90),
		scoredItem("P2", "Omega", "dress", 85),
	}

	selected, _ := sel.SelectTopN(items, 2)
	for _, it := range selected {
		if it.FinalScore() != 90 && it.FinalScore() != 85 {
			t.Errorf("%s score mutated to %v", it.ID, it.FinalScore())
		}
	}
}

func TestSelector_ZeroNAndEmptyInput(t *testing.T) {
	sel := &Selector{GroupKey: MetaKey("brand")}

	if got, _ := sel.SelectTopN(nil, 5); len(got) != 0 {
		t.Errorf("empty input: got %d items", len(got))
	}
	if got, _ := sel.SelectTopN([]*core.Item{scoredItem("P1", "Rolex", "dive", 1)}, 0); len(got) != 0 {
		t.Errorf("n=0: got %d items", len(got))
	}
}

func TestTopNNode_Truncates(t *testing.T) {
	n := &TopNNode{N: 2}
	items := []*core.Item{
		scoredItem("P1", "Rolex", "dive", 90),
		scoredItem("P2", "Omega", "dress", 85),
		scoredItem("P3", "Seiko", "sport", 80),
	}

	out, err := n.Process(nil, nil, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("got %d items, want 2", len(out))
	}

	all := &TopNNode{N: 0}
	out, _ = all.Process(nil, nil, items)
	if len(out) != 3 {
		t.Errorf("N<=0 should pass through, got %d", len(out))
	}
}
