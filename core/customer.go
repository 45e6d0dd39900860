package core

import (
	"strings"
	"time"
)

// 客户层级，有序：bronze < silver < gold < platinum < diamond。
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
	TierDiamond  = "diamond"
)

// TierRank 返回层级的序号（bronze=0），未知层级返回 -1。
func TierRank(tier string) int {
	switch strings.ToLower(tier) {
	case TierBronze:
		return 0
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierPlatinum:
		return 3
	case TierDiamond:
		return 4
	default:
		return -1
	}
}

// CustomerProfile 是客户画像的核心抽象。
//
// 它不属于某一个 Node，而是：
//   - 被所有 Node 共享（价格区间驱动 price-fit，品牌偏好驱动 brand 规则）
//   - 驱动 Filter（已购排除）/ Rank（偏好打分）/ Risk（流失评估）
//
// 引擎只读不写：画像由外部数据层维护（客户事件、订单、工单）。
type CustomerProfile struct {
	ID string

	// 静态属性
	Tier      string // bronze / silver / gold / platinum / diamond
	FirstName string
	LastName  string

	// 偏好画像
	PreferredBrands []string // 声明的品牌偏好
	PurchasedBrands []string // 历史购买过的品牌
	PriceMin        float64  // 偏好价格区间 [PriceMin, PriceMax]
	PriceMax        float64
	StyleTags       []string // 风格偏好标签，例如 "sport"、"dress"、"dive"

	// 行为与价值指标
	TotalSpent        float64
	AvgOrderValue     float64
	ChurnRiskScore    float64 // [0,1]，由外部维护
	SatisfactionScore float64 // [0,10]
	EngagementScore   float64 // [0,1]
	LastPurchaseDate  time.Time
	LastLoginDate     time.Time

	// 已购产品，用于推荐排除
	OwnedProductIDs []string
}

// PrefersBrand 检查品牌是否在声明偏好中（大小写不敏感）。
func (p *CustomerProfile) PrefersBrand(brand string) bool {
	return containsFold(p.PreferredBrands, brand)
}

// HasPurchasedBrand 检查品牌是否在购买历史中（大小写不敏感）。
func (p *CustomerProfile) HasPurchasedBrand(brand string) bool {
	return containsFold(p.PurchasedBrands, brand)
}

// HasStyleTag 检查风格标签是否在偏好中（大小写不敏感）。
func (p *CustomerProfile) HasStyleTag(tag string) bool {
	return containsFold(p.StyleTags, tag)
}

// InPriceRange 检查价格是否落在偏好区间内。
// 未配置区间（PriceMax == 0）时视为任何价格都在区间内。
func (p *CustomerProfile) InPriceRange(price float64) bool {
	if p.PriceMax <= 0 {
		return true
	}
	return price >= p.PriceMin && price <= p.PriceMax
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
