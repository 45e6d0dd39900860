// Package search 实现对文档/活动的字面相关性检索。
//
// 打分是确定性的字面匹配（大小写不敏感的子串命中 + 词频加成），
// 不做语义/向量检索；排序的次级键是时间（越新越靠前），保证同分稳定有序。
package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/customer360/rankkit/core"
	"github.com/customer360/rankkit/pkg/utils"
)

// 各类来源的默认时间窗口（天）。调用方按领域选择：文档一年、活动九十天。
const (
	DefaultDocumentMaxAgeDays = 365
	DefaultActivityMaxAgeDays = 90
)

// DefaultSnippetLen 是摘要片段的默认长度（字符数），以命中位置为中心截取。
const DefaultSnippetLen = 240

// ErrEmptyQuery 表示检索词为空/空白，在任何打分开始前上抛。
var ErrEmptyQuery = core.NewDomainError(core.ModuleSearch, core.ErrorCodeInvalidQuery, "search: query must not be blank")

// ErrInvalidLimit 表示请求条数不合法（必须 > 0）。
var ErrInvalidLimit = core.NewDomainError(core.ModuleSearch, core.ErrorCodeInvalidInput, "search: limit must be positive")

// Weights 是相关性打分权重（权重即配置，不内联在代码里）。
type Weights struct {
	TitleHit   float64 `yaml:"title_hit" json:"title_hit"`     // 标题命中
	SummaryHit float64 `yaml:"summary_hit" json:"summary_hit"` // 正文/类别命中
}

// DefaultWeights 返回默认权重：标题 10、正文/类别 5。
func DefaultWeights() Weights {
	return Weights{TitleHit: 10, SummaryHit: 5}
}

// Filters 是检索过滤条件，全部可选。
// Type/Tier 是打分前的精确匹配谓词；MaxAgeDays 排除窗口外的旧条目。
type Filters struct {
	Type       string
	Tier       string
	MaxAgeDays int
}

// Indexer 是相关性检索器。无状态、只读，可被并发使用。
type Indexer struct {
	Weights    Weights
	SnippetLen int

	// Now 便于测试注入时钟；为 nil 时使用 time.Now。
	Now func() time.Time
}

func NewIndexer() *Indexer {
	return &Indexer{
		Weights:    DefaultWeights(),
		SnippetLen: DefaultSnippetLen,
	}
}

// Search 对候选文档做相关性打分并排序。
//
// 打分规则：可检索文本 = 标题 + 正文 + 类别（统一小写），
// base = TitleHit×[标题命中] + SummaryHit×[正文或类别命中] + 词频加成，
// 其中词频加成 = 命中次数 / 检索词长度。base == 0 的候选被排除。
// 排序：base 降序，同分按时间降序（稳定、确定性）。
//
// 空结果不是错误：返回空列表。
func (ix *Indexer) Search(
	_ context.Context,
	docs []*core.Document,
	query string,
	filters Filters,
	limit int,
) ([]*core.Item, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	now := time.Now()
	if ix.Now != nil {
		now = ix.Now()
	}
	var cutoff time.Time
	if filters.MaxAgeDays > 0 {
		cutoff = now.AddDate(0, 0, -filters.MaxAgeDays)
	}

	type scored struct {
		item      *core.Item
		createdAt time.Time
	}
	results := make([]scored, 0, 16)

	qlen := float64(utf8.RuneCountInString(q))

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		// 打分前的精确匹配过滤
		if filters.Type != "" && !strings.EqualFold(doc.Type, filters.Type) {
			continue
		}
		if filters.Tier != "" && !strings.EqualFold(doc.Tier, filters.Tier) {
			continue
		}
		if !cutoff.IsZero() && doc.CreatedAt.Before(cutoff) {
			continue
		}

		title := strings.ToLower(doc.Title)
		body := strings.ToLower(doc.Body)
		category := strings.ToLower(doc.Category)
		searchable := title + " " + body + " " + category

		occurrences := strings.Count(searchable, q)
		if occurrences == 0 {
			continue
		}

		score := 0.0
		if strings.Contains(title, q) {
			score += ix.Weights.TitleHit
		}
		if strings.Contains(body, q) || strings.Contains(category, q) {
			score += ix.Weights.SummaryHit
		}
		// 词频加成：命中次数按检索词长度归一
		score += float64(occurrences) / qlen

		it := core.NewItem(doc.ID)
		it.BaseScore = score
		it.Meta["title"] = doc.Title
		it.Meta["type"] = doc.Type
		it.Meta["category"] = doc.Category
		it.Meta["customer_id"] = doc.CustomerID
		it.Meta["created_at"] = doc.CreatedAt
		it.Meta["snippet"] = ix.snippet(doc, q)
		it.PutLabel("recall_source", utils.Label{Value: "search", Source: "recall"})

		results = append(results, scored{item: it, createdAt: doc.CreatedAt})
	}

	// base 降序，同分按时间降序；SliceStable 保证残余平手按输入顺序
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].item.BaseScore != results[j].item.BaseScore {
			return results[i].item.BaseScore > results[j].item.BaseScore
		}
		return results[i].createdAt.After(results[j].createdAt)
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]*core.Item, 0, len(results))
	for _, r := range results {
		out = append(out, r.item)
	}
	return out, nil
}

func (ix *Indexer) snippet(doc *core.Document, q string) string {
	maxLen := ix.SnippetLen
	if maxLen <= 0 {
		maxLen = DefaultSnippetLen
	}
	return ExtractSnippet(doc.Body, doc.Title, q, maxLen)
}
