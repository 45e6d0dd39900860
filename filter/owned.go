package filter

import (
	"context"

	"github.com/customer360/rankkit/core"
)

// OwnedFilter 过滤客户已经拥有的产品 —— 不向客户推荐其已购商品。
// 已购集合的来源按优先级合并：rctx.Customer 画像、内存列表、外部存储。
type OwnedFilter struct {
	// ProductIDs 是内存中的已购产品 ID 列表（测试或静态配置用）
	ProductIDs []string

	// Store 用于从存储读取已购列表（可选）
	Store OwnedStore

	// KeyPrefix 是 Store 中已购列表的 key 前缀，实际 key 为 {KeyPrefix}:{customerID}
	KeyPrefix string
}

// OwnedStore 是已购记录存储接口。
type OwnedStore interface {
	// GetOwned 获取客户已购产品 ID 列表
	GetOwned(ctx context.Context, customerID string, keyPrefix string) ([]string, error)
}

// NewOwnedFilter 创建一个已购过滤器。
func NewOwnedFilter(productIDs []string, storeAdapter *StoreAdapter, keyPrefix string) *OwnedFilter {
	var store OwnedStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &OwnedFilter{
		ProductIDs: productIDs,
		Store:      store,
		KeyPrefix:  keyPrefix,
	}
}

func (f *OwnedFilter) Name() string { return "filter.owned" }

func (f *OwnedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 画像中的已购集合
	if rctx != nil && rctx.Customer != nil {
		for _, id := range rctx.Customer.OwnedProductIDs {
			if item.ID == id {
				return true, nil
			}
		}
	}

	// 内存列表
	for _, id := range f.ProductIDs {
		if item.ID == id {
			return true, nil
		}
	}

	// 外部存储
	if f.Store != nil && rctx != nil && rctx.CustomerID != "" {
		owned, err := f.Store.GetOwned(ctx, rctx.CustomerID, f.KeyPrefix)
		if err == nil {
			for _, id := range owned {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
