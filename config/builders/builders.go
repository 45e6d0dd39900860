// Package builders 在 init 中注册内置 Node 的配置构建器。
// 入口处 import _ "github.com/customer360/rankkit/config/builders" 即可启用配置驱动。
package builders

import (
	"fmt"
	"time"

	"github.com/customer360/rankkit/config"
	"github.com/customer360/rankkit/filter"
	"github.com/customer360/rankkit/match"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/conv"
	"github.com/customer360/rankkit/recall"
	"github.com/customer360/rankkit/rerank"
)

func init() {
	config.Register("recall.hot", BuildHotNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.match", BuildMatchNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	return &recall.Hot{
		Key: conv.ConfigGet(cfg, "key", ""),
		IDs: ids,
	}, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			if ids == nil {
				ids = []string{}
			}
			sources = append(sources, &recall.Hot{
				Key: conv.ConfigGet(sourceMap, "key", ""),
				IDs: ids,
			})
		case "catalog":
			// catalog 需要 ProductStore，只能由代码注入，不从配置构建
			return nil, fmt.Errorf("catalog source requires a product store, wire it in code")
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "owned":
			ids := conv.SliceAnyToString(filterMap["product_ids"])
			if ids == nil {
				ids = []string{}
			}
			keyPrefix := conv.ConfigGet(filterMap, "key_prefix", "")
			filters = append(filters, filter.NewOwnedFilter(ids, nil, keyPrefix))
		case "availability":
			filters = append(filters, &filter.AvailabilityFilter{})
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter requires an expression")
			}
			filters = append(filters, filter.NewExprFilter(expr))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildMatchNode(cfg map[string]interface{}) (pipeline.Node, error) {
	m := match.NewMatcher()

	if weightsMap, ok := cfg["weights"].(map[string]interface{}); ok {
		w := conv.MapToFloat64(weightsMap)
		applyWeight(w, "price_in_range", &m.Weights.PriceInRange)
		applyWeight(w, "price_below_range", &m.Weights.PriceBelowRange)
		applyWeight(w, "price_above_range", &m.Weights.PriceAboveRange)
		applyWeight(w, "brand_preferred", &m.Weights.BrandPreferred)
		applyWeight(w, "brand_purchased", &m.Weights.BrandPurchased)
		applyWeight(w, "style_match", &m.Weights.StyleMatch)
		applyWeight(w, "quality_max", &m.Weights.QualityMax)
		applyWeight(w, "review_volume_max", &m.Weights.ReviewVolumeMax)
		applyWeight(w, "retention_boost", &m.Weights.RetentionBoost)
	}

	if boostsMap, ok := cfg["boosts"].(map[string]interface{}); ok {
		table := make(match.BoostTable, len(boostsMap))
		for tag, rc := range boostsMap {
			ruleMap, ok := rc.(map[string]interface{})
			if !ok {
				continue
			}
			table[tag] = match.BoostRule{
				Brands:           conv.SliceAnyToString(ruleMap["brands"]),
				Categories:       conv.SliceAnyToString(ruleMap["categories"]),
				MinRating:        conv.ConfigGetFloat64(ruleMap, "min_rating", 0),
				MaxSpendFraction: conv.ConfigGetFloat64(ruleMap, "max_spend_fraction", 0),
				Bonus:            conv.ConfigGetFloat64(ruleMap, "bonus", 0),
			}
		}
		m.Boosts = table
	}

	return &match.Node{Matcher: m}, nil
}

func applyWeight(w map[string]float64, key string, dst *float64) {
	if v, ok := w[key]; ok {
		*dst = v
	}
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	groupKey := conv.ConfigGet(cfg, "group_key", "brand")
	if groupKey == "" {
		groupKey = "brand"
	}
	sel := &rerank.Selector{
		GroupKey: rerank.MetaKey(groupKey),
		Jitter:   conv.ConfigGetFloat64(cfg, "jitter", 0),
		Seed:     conv.ConfigGetInt64(cfg, "seed", 0),
	}
	if secondary := conv.ConfigGet(cfg, "secondary_key", ""); secondary != "" {
		sel.SecondaryKey = rerank.MetaKey(secondary)
	}
	n := int(conv.ConfigGetInt64(cfg, "n", 0))
	if n <= 0 {
		return nil, fmt.Errorf("diversity node requires a positive n")
	}
	return &rerank.DiversityNode{Selector: sel, N: n}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}
