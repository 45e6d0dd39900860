// Package match 实现产品对客户画像的偏好打分。
//
// 打分是显式的加权规则求和（价格/品牌/风格/质量），外加一个
// 加性的上下文加成（BoostTable 查表）；每条命中规则同时产出一条
// 人类可读的 match reason，顺序固定：价格 → 品牌 → 风格 → 质量 → 上下文。
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pkg/utils"
)

// Context 是一次匹配的上下文输入。
type Context struct {
	// Tag 购物上下文标签（luxury / sport / gift / budget / ...）；
	// 未识别的标签贡献零加成
	Tag string

	// RiskLevel 来自风险评估的等级；HIGH 时偏好品牌附加挽留加成
	RiskLevel string
}

// Matcher 是偏好匹配器。无状态、只读，可被并发使用。
type Matcher struct {
	Weights Weights
	Boosts  BoostTable
}

func NewMatcher() *Matcher {
	return &Matcher{
		Weights: DefaultWeights(),
		Boosts:  DefaultBoostTable(),
	}
}

// Match 对目录中每个产品打分，排除已购产品，按最终分降序返回。
//
// owned 是显式传入的已购集合（即使为空），nil 按空集处理。
// 排除后目录为空时返回空列表（由调用方决定是否放宽过滤）。
func (m *Matcher) Match(
	customer *core.CustomerProfile,
	catalog []*core.Product,
	owned map[string]bool,
	mctx Context,
) []*core.Item {
	out := make([]*core.Item, 0, len(catalog))

	for _, p := range catalog {
		if p == nil || customer == nil {
			continue
		}
		if owned[p.ID] {
			continue
		}

		it := core.NewItem(p.ID)
		it.Meta["product"] = p
		it.Meta["name"] = p.Name
		it.Meta["brand"] = p.Brand
		it.Meta["category"] = p.Category
		it.Meta["price"] = p.Price
		it.Meta["rating"] = p.Rating
		it.Meta["review_count"] = p.ReviewCount

		m.Score(customer, p, mctx, it)
		out = append(out, it)
	}

	// 最终分降序；SliceStable 保证同分按目录顺序（确定性平手规则）
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore() > out[j].FinalScore()
	})
	return out
}

// Score 对单个产品打分，结果写入 item 的 BaseScore / ContextBoost / Reasons。
// 纯函数（只写 item），便于单测单条规则。
func (m *Matcher) Score(customer *core.CustomerProfile, p *core.Product, mctx Context, it *core.Item) {
	w := m.Weights

	// 1. 价格契合度
	switch {
	case customer.InPriceRange(p.Price):
		it.BaseScore += w.PriceInRange
		it.AddReason("Within your preferred price range")
	case p.Price < customer.PriceMin:
		it.BaseScore += w.PriceBelowRange
		it.AddReason("Below your preferred price range")
	default:
		it.BaseScore += w.PriceAboveRange
	}

	// 2. 品牌偏好（品牌缺失属于数据不一致：中性贡献 + Label 告警）
	switch {
	case p.Brand == "":
		it.PutLabel("data_warning", utils.Label{Value: "missing_brand", Source: "rank"})
	case customer.PrefersBrand(p.Brand):
		it.BaseScore += w.BrandPreferred
		it.AddReason(fmt.Sprintf("Preferred brand: %s", p.Brand))
	case customer.HasPurchasedBrand(p.Brand):
		it.BaseScore += w.BrandPurchased
		it.AddReason(fmt.Sprintf("You've purchased %s before", p.Brand))
	}

	// 3. 风格契合
	if style, ok := matchStyle(customer, p); ok {
		it.BaseScore += w.StyleMatch
		it.AddReason(fmt.Sprintf("Matches your %s style", style))
	}

	// 4. 质量：评分按比例贡献，评论量加成递减封顶
	rating := p.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	it.BaseScore += rating / 5 * w.QualityMax
	volume := float64(p.ReviewCount) / 100
	if volume > 1 {
		volume = 1
	}
	it.BaseScore += volume * w.ReviewVolumeMax
	if rating >= 4.0 && p.ReviewCount > 0 {
		it.AddReason(fmt.Sprintf("Highly rated: %.1f/5 (%d reviews)", rating, p.ReviewCount))
	}

	// 5. 上下文加成（加性，不乘基础分）
	if rule, ok := m.Boosts.Lookup(mctx.Tag); ok && rule.Matches(customer, p) {
		it.ContextBoost += rule.Bonus
		it.AddReason(fmt.Sprintf("Matches your %s shopping context", strings.ToLower(mctx.Tag)))
		it.PutLabel("context_boost", utils.Label{Value: strings.ToLower(mctx.Tag), Source: "rank"})
	}

	// 高流失风险客户：偏好品牌附加挽留加成（风险等级作为上下文输入）
	if strings.EqualFold(mctx.RiskLevel, "HIGH") && p.Brand != "" && customer.PrefersBrand(p.Brand) {
		it.ContextBoost += w.RetentionBoost
		it.AddReason("One of your favorite brands")
		it.PutLabel("context_boost", utils.Label{Value: "retention", Source: "rank"})
	}
}

// matchStyle 判断产品类别/标签是否命中客户的风格标签。
func matchStyle(customer *core.CustomerProfile, p *core.Product) (string, bool) {
	for _, tag := range customer.StyleTags {
		if strings.EqualFold(tag, p.Category) || p.HasTag(tag) {
			return strings.ToLower(tag), true
		}
	}
	return "", false
}
