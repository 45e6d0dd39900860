package match

// Weights 是偏好打分的权重配置。
// 打分结构固定为“加权求和 + 最终的加性上下文加成”，
// 权重大小是可调配置，不是代码常量。
type Weights struct {
	// 价格契合度：区间内满权重，低于区间部分权重，高于区间最低权重
	PriceInRange    float64 `yaml:"price_in_range" json:"price_in_range"`
	PriceBelowRange float64 `yaml:"price_below_range" json:"price_below_range"`
	PriceAboveRange float64 `yaml:"price_above_range" json:"price_above_range"`

	// 品牌偏好：声明偏好 > 购买历史 > 无
	BrandPreferred float64 `yaml:"brand_preferred" json:"brand_preferred"`
	BrandPurchased float64 `yaml:"brand_purchased" json:"brand_purchased"`

	// 风格契合：产品类别/标签命中客户声明的风格标签
	StyleMatch float64 `yaml:"style_match" json:"style_match"`

	// 质量：评分按比例贡献（封顶 QualityMax），
	// 评论量加成按 min(review_count/100, 1) 递减（封顶 ReviewVolumeMax）
	QualityMax      float64 `yaml:"quality_max" json:"quality_max"`
	ReviewVolumeMax float64 `yaml:"review_volume_max" json:"review_volume_max"`

	// 挽留加成：高流失风险客户 + 偏好品牌时的上下文加成
	RetentionBoost float64 `yaml:"retention_boost" json:"retention_boost"`
}

// DefaultWeights 返回默认权重。量级接近原始调参（价格权重最高），
// 但不是唯一正确值；整套权重可整体从 YAML 载入覆盖。
func DefaultWeights() Weights {
	return Weights{
		PriceInRange:    30,
		PriceBelowRange: 15,
		PriceAboveRange: 5,
		BrandPreferred:  25,
		BrandPurchased:  12,
		StyleMatch:      20,
		QualityMax:      15,
		ReviewVolumeMax: 10,
		RetentionBoost:  5,
	}
}
