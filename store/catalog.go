package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/customer360/rankkit/core"
)

// MemoryCatalog 是内存实现的客户/产品/文档读视图，用于测试、示例
// 和小规模部署（数据从 CSV/数据库一次性装载）。
type MemoryCatalog struct {
	mu        sync.RWMutex
	customers map[string]*core.CustomerProfile
	products  []*core.Product
	documents []*core.Document
	owned     map[string][]string // customerID -> product IDs
}

var (
	_ core.CustomerStore = (*MemoryCatalog)(nil)
	_ core.ProductStore  = (*MemoryCatalog)(nil)
	_ core.DocumentStore = (*MemoryCatalog)(nil)
)

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		customers: make(map[string]*core.CustomerProfile),
		owned:     make(map[string][]string),
	}
}

// PutCustomer 装载一个客户画像；画像中的 OwnedProductIDs 同时登记为已购集合。
func (c *MemoryCatalog) PutCustomer(customer *core.CustomerProfile) {
	if customer == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers[customer.ID] = customer
	if len(customer.OwnedProductIDs) > 0 {
		c.owned[customer.ID] = append([]string(nil), customer.OwnedProductIDs...)
	}
}

// PutProducts 装载产品目录（追加）。
func (c *MemoryCatalog) PutProducts(products ...*core.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, products...)
}

// PutDocuments 装载文档/活动（追加）。
func (c *MemoryCatalog) PutDocuments(docs ...*core.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.documents = append(c.documents, docs...)
}

// AddOwned 登记客户的已购产品。
func (c *MemoryCatalog) AddOwned(customerID string, productIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owned[customerID] = append(c.owned[customerID], productIDs...)
}

// GetCustomer 按 ID 解析客户画像；不存在返回 NOT_FOUND。
func (c *MemoryCatalog) GetCustomer(_ context.Context, customerID string) (*core.CustomerProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	customer, ok := c.customers[customerID]
	if !ok {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
			fmt.Sprintf("customer %s not found", customerID))
	}
	return customer, nil
}

// GetOwnedProducts 获取客户已购产品 ID 列表；没有记录返回空列表（不是错误）。
func (c *MemoryCatalog) GetOwnedProducts(_ context.Context, customerID string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.owned[customerID]...), nil
}

// ListProducts 列出全部产品。
func (c *MemoryCatalog) ListProducts(_ context.Context) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Product(nil), c.products...), nil
}

// ListDocuments 列出全部文档与活动。
func (c *MemoryCatalog) ListDocuments(_ context.Context) ([]*core.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Document(nil), c.documents...), nil
}

// StaticSignals 是固定返回的行为信号源，用于测试和信号服务缺位时的兜底。
type StaticSignals struct {
	Signals map[string]core.BehaviorSignals
}

var _ core.SignalSource = (*StaticSignals)(nil)

// FetchSignals 返回预置信号；没有记录返回零值信号（全部按中性处理）。
func (s *StaticSignals) FetchSignals(_ context.Context, customerID string) (core.BehaviorSignals, error) {
	if s == nil || s.Signals == nil {
		return core.BehaviorSignals{}, nil
	}
	return s.Signals[customerID], nil
}
