package core

import "strings"

// 产品状态：只有 active 且有库存的产品可被推荐。
const ProductStatusActive = "active"

// Product 是产品目录中的一条记录（只读输入，由外部数据层维护）。
type Product struct {
	ID            string
	Name          string
	Brand         string
	Category      string
	Price         float64
	Rating        float64 // [0,5]
	ReviewCount   int
	StockQuantity int
	Description   string
	Tags          []string
	Images        []string
	Status        string
}

// Available 检查产品是否可售：状态 active 且有库存。
func (p *Product) Available() bool {
	return strings.EqualFold(p.Status, ProductStatusActive) && p.StockQuantity > 0
}

// HasTag 检查产品标签（大小写不敏感）。
func (p *Product) HasTag(tag string) bool {
	return containsFold(p.Tags, tag)
}
