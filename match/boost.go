package match

import (
	"strings"

	"github.com/customer360/rankkit/core"
)

// BoostRule 是一条上下文加成规则：任一已配置的条件命中即生效。
// 规则是查表配置，新增上下文不需要改代码。
type BoostRule struct {
	// Brands 命中这些品牌之一（大小写不敏感）
	Brands []string `yaml:"brands" json:"brands"`

	// Categories 命中这些类别/标签之一
	Categories []string `yaml:"categories" json:"categories"`

	// MinRating 评分不低于该值
	MinRating float64 `yaml:"min_rating" json:"min_rating"`

	// MaxSpendFraction 价格低于客户平均客单价的该比例（预算型上下文）
	MaxSpendFraction float64 `yaml:"max_spend_fraction" json:"max_spend_fraction"`

	// Bonus 命中后的加性加成
	Bonus float64 `yaml:"bonus" json:"bonus"`
}

// Matches 判断规则是否对该客户/产品生效。
// 未配置任何条件的规则不生效。
func (r BoostRule) Matches(customer *core.CustomerProfile, p *core.Product) bool {
	if len(r.Brands) > 0 {
		for _, b := range r.Brands {
			if strings.EqualFold(b, p.Brand) {
				return true
			}
		}
	}
	if len(r.Categories) > 0 {
		for _, c := range r.Categories {
			if strings.EqualFold(c, p.Category) || p.HasTag(c) {
				return true
			}
		}
	}
	if r.MinRating > 0 && p.Rating >= r.MinRating {
		return true
	}
	if r.MaxSpendFraction > 0 && customer != nil && customer.AvgOrderValue > 0 &&
		p.Price < customer.AvgOrderValue*r.MaxSpendFraction {
		return true
	}
	return false
}

// BoostTable 是上下文标签 → 加成规则的查找表。
// 未识别的上下文贡献零加成，绝不是错误。
type BoostTable map[string]BoostRule

// Lookup 按标签查规则（大小写不敏感）。
func (t BoostTable) Lookup(tag string) (BoostRule, bool) {
	if t == nil || tag == "" {
		return BoostRule{}, false
	}
	rule, ok := t[strings.ToLower(tag)]
	return rule, ok
}

// DefaultBoostTable 返回内置的购物上下文规则：
// luxury / sport / gift / budget（对应看板里的购物意图选项）。
func DefaultBoostTable() BoostTable {
	return BoostTable{
		"luxury": {
			Brands: []string{"Rolex", "Patek Philippe", "Audemars Piguet", "Omega"},
			Bonus:  15,
		},
		"sport": {
			Categories: []string{"sport", "dive", "chronograph"},
			Bonus:      10,
		},
		"gift": {
			MinRating: 4.5,
			Bonus:     10,
		},
		"budget": {
			MaxSpendFraction: 0.5,
			Bonus:            10,
		},
	}
}
