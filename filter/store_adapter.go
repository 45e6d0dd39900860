package filter

import (
	"context"
	"encoding/json"

	"github.com/customer360/rankkit/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 已购列表以 JSON 字符串数组存储在 {keyPrefix}:{customerID} 下。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetOwned 从 Store 读取客户已购产品 ID 列表。
// key 不存在按空列表处理（新客户没有购买记录不是错误）。
func (a *StoreAdapter) GetOwned(ctx context.Context, customerID string, keyPrefix string) ([]string, error) {
	key := keyPrefix + ":" + customerID
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
