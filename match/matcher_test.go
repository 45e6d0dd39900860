package match

import (
	"strings"
	"testing"

	"github.com/customer360/rankkit/core"
)

func testCustomer() *core.CustomerProfile {
	return &core.CustomerProfile{
		ID:              "CUST_001",
		Tier:            core.TierGold,
		PreferredBrands: []string{"Rolex", "Omega"},
		PurchasedBrands: []string{"Seiko"},
		PriceMin:        1000,
		PriceMax:        15000,
		StyleTags:       []string{"dive", "sport"},
		AvgOrderValue:   8000,
	}
}

func testCatalog() []*core.Product {
	return []*core.Product{
		{ID: "P1", Name: "Submariner", Brand: "Rolex", Category: "dive", Price: 12000, Rating: 4.8, ReviewCount: 230, StockQuantity: 3, Status: "active"},
		{ID: "P2", Name: "Speedmaster", Brand: "Omega", Category: "chronograph", Price: 6500, Rating: 4.7, ReviewCount: 180, StockQuantity: 5, Status: "active"},
		{ID: "P3", Name: "Prospex", Brand: "Seiko", Category: "dive", Price: 450, Rating: 4.4, ReviewCount: 95, StockQuantity: 12, Status: "active"},
		{ID: "P4", Name: "Generic Quartz", Brand: "NoName", Category: "dress", Price: 90000, Rating: 3.2, ReviewCount: 4, StockQuantity: 1, Status: "active"},
	}
}

func TestMatcher_ExcludesOwned(t *testing.T) {
	m := NewMatcher()
	owned := map[string]bool{"P1": true, "P3": true}

	items := m.Match(testCustomer(), testCatalog(), owned, Context{})

	for _, it := range items {
		if owned[it.ID] {
			t.Errorf("owned product %s leaked into results", it.ID)
		}
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestMatcher_EmptyCatalogAfterExclusion(t *testing.T) {
	m := NewMatcher()
	owned := map[string]bool{"P1": true, "P2": true, "P3": true, "P4": true}

	items := m.Match(testCustomer(), testCatalog(), owned, Context{})
	if len(items) != 0 {
		t.Errorf("got %d items, want empty list", len(items))
	}
}

// 偏好品牌 + 区间内价格 + 风格命中的产品应拿到最高分。
func TestMatcher_Ordering(t *testing.T) {
	m := NewMatcher()

	items := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{})
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	if items[0].ID != "P1" {
		t.Errorf("top item = %s, want P1", items[0].ID)
	}
	if items[len(items)-1].ID != "P4" {
		t.Errorf("bottom item = %s, want P4", items[len(items)-1].ID)
	}
	for i := 1; i < len(items); i++ {
		if items[i].FinalScore() > items[i-1].FinalScore() {
			t.Errorf("items not in descending order at %d", i)
		}
	}
}

func TestMatcher_Reasons(t *testing.T) {
	m := NewMatcher()

	items := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{})
	top := items[0] // P1

	wantPrefix := []string{
		"Within your preferred price range",
		"Preferred brand: Rolex",
		"Matches your dive style",
	}
	if len(top.Reasons) < len(wantPrefix) {
		t.Fatalf("reasons = %v, want at least %d entries", top.Reasons, len(wantPrefix))
	}
	// 固定顺序：价格 → 品牌 → 风格 → 质量
	for i, want := range wantPrefix {
		if top.Reasons[i] != want {
			t.Errorf("reason[%d] = %q, want %q", i, top.Reasons[i], want)
		}
	}
	if !strings.HasPrefix(top.Reasons[3], "Highly rated: 4.8/5") {
		t.Errorf("reason[3] = %q, want rating reason", top.Reasons[3])
	}
}

func TestMatcher_ContextBoost(t *testing.T) {
	m := NewMatcher()
	customer := testCustomer()
	catalog := testCatalog()

	base := m.Match(customer, catalog, map[string]bool{}, Context{})
	luxury := m.Match(customer, catalog, map[string]bool{}, Context{Tag: "luxury"})

	find := func(items []*core.Item, id string) *core.Item {
		for _, it := range items {
			if it.ID == id {
				return it
			}
		}
		t.Fatalf("item %s not found", id)
		return nil
	}

	// luxury 上下文只加成奢侈品牌（Rolex/Omega），且是加性加成
	p1Base, p1Lux := find(base, "P1"), find(luxury, "P1")
	if p1Lux.ContextBoost <= 0 {
		t.Error("P1 should receive luxury context boost")
	}
	if p1Lux.BaseScore != p1Base.BaseScore {
		t.Error("context boost must not change base score")
	}

	p3Lux := find(luxury, "P3")
	if p3Lux.ContextBoost != 0 {
		t.Errorf("Seiko should not receive luxury boost, got %v", p3Lux.ContextBoost)
	}
}

// budget 上下文：价格低于平均客单价一半的产品加成。
func TestMatcher_BudgetBoost(t *testing.T) {
	m := NewMatcher()

	items := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{Tag: "budget"})
	for _, it := range items {
		p := it.Meta["product"].(*core.Product)
		if p.Price < 4000 && it.ContextBoost == 0 {
			t.Errorf("%s (price %v) should receive budget boost", it.ID, p.Price)
		}
		if p.Price >= 4000 && it.ContextBoost != 0 {
			t.Errorf("%s (price %v) should not receive budget boost", it.ID, p.Price)
		}
	}
}

// 未识别的上下文贡献零加成，不是错误。
func TestMatcher_UnknownContext(t *testing.T) {
	m := NewMatcher()

	items := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{Tag: "holiday-special"})
	for _, it := range items {
		if it.ContextBoost != 0 {
			t.Errorf("%s got boost %v from unknown context", it.ID, it.ContextBoost)
		}
	}
}

// 高风险客户的偏好品牌获得挽留加成。
func TestMatcher_RetentionBoost(t *testing.T) {
	m := NewMatcher()

	items := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{RiskLevel: "HIGH"})
	for _, it := range items {
		p := it.Meta["product"].(*core.Product)
		preferred := p.Brand == "Rolex" || p.Brand == "Omega"
		if preferred && it.ContextBoost != m.Weights.RetentionBoost {
			t.Errorf("%s: ContextBoost = %v, want retention boost %v", it.ID, it.ContextBoost, m.Weights.RetentionBoost)
		}
		if !preferred && it.ContextBoost != 0 {
			t.Errorf("%s should not receive retention boost", it.ID)
		}
	}
}

// 品牌缺失按中性贡献处理并打告警 Label，不报错。
func TestMatcher_MissingBrandIsNeutral(t *testing.T) {
	m := NewMatcher()
	catalog := []*core.Product{
		{ID: "PX", Name: "Mystery", Brand: "", Category: "dress", Price: 5000, Rating: 4.0, ReviewCount: 50, Status: "active"},
	}

	items := m.Match(testCustomer(), catalog, map[string]bool{}, Context{})
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if _, ok := items[0].Labels["data_warning"]; !ok {
		t.Error("missing brand should be labeled as data_warning")
	}
}

// 相同输入两次调用产出一致（幂等）。
func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher()

	a := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{Tag: "luxury"})
	b := m.Match(testCustomer(), testCatalog(), map[string]bool{}, Context{Tag: "luxury"})
	if len(a) != len(b) {
		t.Fatalf("lengths differ")
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].FinalScore() != b[i].FinalScore() {
			t.Errorf("position %d differs", i)
		}
	}
}
