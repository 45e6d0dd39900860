package store

import (
	"context"
	"testing"

	"github.com/customer360/rankkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("missing key: got %v, want store not found", err)
	}

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = (%q, %v), want (v, nil)", got, err)
	}

	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Error("deleted key should be not found")
	}
}

func TestMemoryStore_ZRangeDescending(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "hot", 10, "P1")
	ms.ZAdd(ctx, "hot", 30, "P2")
	ms.ZAdd(ctx, "hot", 20, "P3")

	got, err := ms.ZRange(ctx, "hot", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"P2", "P3", "P1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %s, want %s", i, got[i], want[i])
		}
	}

	top2, _ := ms.ZRange(ctx, "hot", 0, 1)
	if len(top2) != 2 || top2[0] != "P2" {
		t.Errorf("top2 = %v, want [P2 P3]", top2)
	}
}

func TestMemoryCatalog(t *testing.T) {
	cat := NewMemoryCatalog()
	ctx := context.Background()

	cat.PutCustomer(&core.CustomerProfile{ID: "CUST_001", Tier: core.TierGold, OwnedProductIDs: []string{"P1"}})
	cat.PutProducts(
		&core.Product{ID: "P1", Name: "Submariner"},
		&core.Product{ID: "P2", Name: "Speedmaster"},
	)
	cat.PutDocuments(&core.Document{ID: "DOC_001", Title: "Billing Dispute Case"})

	customer, err := cat.GetCustomer(ctx, "CUST_001")
	if err != nil || customer.Tier != core.TierGold {
		t.Errorf("GetCustomer = (%v, %v)", customer, err)
	}

	_, err = cat.GetCustomer(ctx, "CUST_999")
	if !core.IsNotFound(err) {
		t.Errorf("unknown customer: got %v, want NOT_FOUND", err)
	}

	owned, err := cat.GetOwnedProducts(ctx, "CUST_001")
	if err != nil || len(owned) != 1 || owned[0] != "P1" {
		t.Errorf("GetOwnedProducts = (%v, %v)", owned, err)
	}

	// 没有记录的客户返回空已购，不是错误
	owned, err = cat.GetOwnedProducts(ctx, "CUST_999")
	if err != nil || len(owned) != 0 {
		t.Errorf("unknown customer owned = (%v, %v), want empty", owned, err)
	}

	products, _ := cat.ListProducts(ctx)
	if len(products) != 2 {
		t.Errorf("got %d products, want 2", len(products))
	}
	docs, _ := cat.ListDocuments(ctx)
	if len(docs) != 1 {
		t.Errorf("got %d documents, want 1", len(docs))
	}
}
