// Package engine 编排三条顶层操作：检索（search）、推荐（recommend）、
// 风险评估（assess risk）。推荐链路按 召回 → 过滤 → 偏好打分 → 多样性
// 组装成 Pipeline 执行，风险评估的结果作为偏好打分的上下文输入。
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/filter"
	"github.com/customer360/rankkit/match"
	"github.com/customer360/rankkit/pipeline"
	"github.com/customer360/rankkit/pkg/utils"
	"github.com/customer360/rankkit/recall"
	"github.com/customer360/rankkit/rerank"
	"github.com/customer360/rankkit/risk"
	"github.com/customer360/rankkit/search"
)

// DefaultRecommendN 是推荐条数的默认值。
const DefaultRecommendN = 5

// Engine 是引擎门面。数据读视图由外部注入，引擎只读不写。
type Engine struct {
	Customers core.CustomerStore
	Products  core.ProductStore
	Documents core.DocumentStore

	// Signals 行为信号源（可选）；缺位或获取失败时退回中性信号
	Signals core.SignalSource

	Risk     *risk.Scorer
	Matcher  *match.Matcher
	Selector *rerank.Selector
	Indexer  *search.Indexer

	// ExtraFilters 追加在 已购/可售 过滤之后的自定义过滤器（如表达式过滤）
	ExtraFilters []filter.Filter
}

// New 创建引擎，打分组件全部使用默认配置；字段可在返回后按需覆盖。
func New(customers core.CustomerStore, products core.ProductStore, documents core.DocumentStore) *Engine {
	return &Engine{
		Customers: customers,
		Products:  products,
		Documents: documents,
		Risk:      risk.NewScorer(),
		Matcher:   match.NewMatcher(),
		Selector: &rerank.Selector{
			GroupKey:     rerank.MetaKey("brand"),
			SecondaryKey: rerank.MetaKey("category"),
		},
		Indexer: search.NewIndexer(),
	}
}

// Recommendation 是一次推荐的完整输出：风险评估 + 有序推荐列表。
type Recommendation struct {
	Risk   *risk.Result
	Result *core.RankedResult
}

// Search 对文档/活动做相关性检索。
// 空白检索词上抛 INVALID_QUERY；空结果返回空列表，不是错误。
func (e *Engine) Search(ctx context.Context, query string, filters search.Filters, limit int) (*core.RankedResult, error) {
	if e.Documents == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnavailable, "engine: document store not configured")
	}

	docs, err := e.Documents.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	items, err := e.Indexer.Search(ctx, docs, query, filters, limit)
	if err != nil {
		return nil, err
	}
	return &core.RankedResult{Items: items, Requested: limit}, nil
}

// Recommend 为客户生成多样化的产品推荐。
//
// 流程：并发装载画像/已购/行为信号 → 风险评估 → Pipeline
//（目录召回 → 已购/可售过滤 → 偏好打分 → 多样性 TopN）。
// 客户不存在上抛 NOT_FOUND；信号获取失败按中性信号继续并打 Label 告警。
func (e *Engine) Recommend(ctx context.Context, customerID, contextTag string, n int) (*Recommendation, error) {
	if n <= 0 {
		n = DefaultRecommendN
	}

	customer, signals, signalsErr, err := e.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	riskRes := e.Risk.Assess(customer, signals)

	rctx := &core.RecommendContext{
		CustomerID: customerID,
		Scene:      contextTag,
		Customer:   customer,
	}
	rctx.PutLabel("risk_level", utils.Label{Value: string(riskRes.Level), Source: "risk"})
	if signalsErr != nil {
		rctx.PutLabel("data_warning", utils.Label{Value: "signals_unavailable", Source: "engine"})
	}

	filters := append([]filter.Filter{
		filter.NewOwnedFilter(nil, nil, ""),
		&filter.AvailabilityFilter{},
	}, e.ExtraFilters...)

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&recall.Catalog{Products: e.Products},
		&filter.FilterNode{Filters: filters},
		&match.Node{Matcher: e.Matcher},
		&rerank.DiversityNode{Selector: e.Selector, N: n},
	}}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	_, relaxed := rctx.GetLabel("diversity_relaxed")
	return &Recommendation{
		Risk: riskRes,
		Result: &core.RankedResult{
			Items:            items,
			Requested:        n,
			DiversityRelaxed: relaxed,
		},
	}, nil
}

// AssessRisk 评估客户流失风险。客户不存在上抛 NOT_FOUND。
func (e *Engine) AssessRisk(ctx context.Context, customerID string) (*risk.Result, error) {
	customer, signals, _, err := e.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return e.Risk.Assess(customer, signals), nil
}

// loadCustomer 并发装载画像、已购集合与行为信号。
// 画像/已购的错误上抛；信号错误单独返回（调用方按中性信号降级）。
func (e *Engine) loadCustomer(ctx context.Context, customerID string) (*core.CustomerProfile, core.BehaviorSignals, error, error) {
	if e.Customers == nil {
		return nil, core.BehaviorSignals{}, nil,
			core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnavailable, "engine: customer store not configured")
	}

	var (
		customer   *core.CustomerProfile
		owned      []string
		signals    core.BehaviorSignals
		signalsErr error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		customer, err = e.Customers.GetCustomer(egCtx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound,
				fmt.Sprintf("customer %s not found", customerID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		owned, err = e.Customers.GetOwnedProducts(egCtx, customerID)
		return err
	})
	if e.Signals != nil {
		eg.Go(func() error {
			var err error
			signals, err = e.Signals.FetchSignals(egCtx, customerID)
			if err != nil {
				// 信号不可用不是致命错误：退回中性信号，由调用方打告警
				signalsErr = err
				signals = core.BehaviorSignals{}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, core.BehaviorSignals{}, nil, err
	}

	// 画像外维护的已购记录并入画像的已购集合（OwnedFilter 读画像）
	if len(owned) > 0 {
		merged := append([]string(nil), customer.OwnedProductIDs...)
		seen := make(map[string]bool, len(merged))
		for _, id := range merged {
			seen[id] = true
		}
		for _, id := range owned {
			if !seen[id] {
				merged = append(merged, id)
				seen[id] = true
			}
		}
		clone := *customer
		clone.OwnedProductIDs = merged
		customer = &clone
	}

	return customer, signals, signalsErr, nil
}
