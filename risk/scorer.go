// Package risk 实现确定性的客户流失风险评估。
//
// 评分直接读取画像中由外部维护的 churn_risk_score；本包负责的是
// 分级（固定断点的阶梯函数）、风险因素与建议动作的规则化输出。
// 全部是纯函数：相同输入永远得到相同结果，可审计、可单测。
package risk

import (
	"fmt"

	"github.com/customer360/rankkit/core"
)

// Level 是风险等级，随 score 单调不降。
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Thresholds 是分级断点。三个等级对 [0,1] 的划分为
// [0, Medium) → LOW，[Medium, High) → MEDIUM，[High, 1] → HIGH，无缝隙无重叠。
type Thresholds struct {
	Medium float64 `yaml:"medium" json:"medium"`
	High   float64 `yaml:"high" json:"high"`
}

// DefaultThresholds 返回默认断点 0.4 / 0.7。
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 0.4, High: 0.7}
}

// Result 是一次风险评估的输出。
type Result struct {
	Score   float64  `json:"score"`
	Level   Level    `json:"level"`
	Factors []string `json:"factors"`
	Actions []string `json:"actions"`
}

// Scorer 是风险评估器。零值不可用，请通过 NewScorer 创建。
type Scorer struct {
	Thresholds Thresholds
}

func NewScorer() *Scorer {
	return &Scorer{Thresholds: DefaultThresholds()}
}

// LevelOf 是 score → level 的阶梯函数。
func (s *Scorer) LevelOf(score float64) Level {
	switch {
	case score >= s.Thresholds.High:
		return LevelHigh
	case score >= s.Thresholds.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Assess 评估一个客户的流失风险。
// customer 必须是已解析的画像（ID 不存在应由调用方以 NOT_FOUND 上抛，
// 不得伪造中性画像）；signals 缺失的字段用零值即可，零值即“无证据”。
//
// Factors 与 Actions 都是“谓词命中才输出”的有序列表，
// 求值顺序即展示顺序；Actions 永远以固定的监控动作收尾，保证非空。
func (s *Scorer) Assess(customer *core.CustomerProfile, signals core.BehaviorSignals) *Result {
	score := clamp01(customer.ChurnRiskScore)
	level := s.LevelOf(score)

	factors := make([]string, 0, 6)
	if signals.DaysSinceLastPurchase > 90 {
		factors = append(factors, fmt.Sprintf("No purchases in the last %d days", signals.DaysSinceLastPurchase))
	}
	if signals.DaysSinceLastLogin > 30 {
		factors = append(factors, fmt.Sprintf("No logins in the last %d days", signals.DaysSinceLastLogin))
	}
	if customer.SatisfactionScore < 5.0 {
		factors = append(factors, "Low satisfaction score")
	}
	if signals.RecentComplaintCount > 0 {
		factors = append(factors, fmt.Sprintf("%d recent support complaints", signals.RecentComplaintCount))
	}
	if signals.RecentReviewSentimentAvg < 0 {
		factors = append(factors, "Negative recent review sentiment")
	}
	if customer.EngagementScore < 0.3 {
		factors = append(factors, "Low engagement score")
	}

	actions := make([]string, 0, 5)
	switch level {
	case LevelHigh:
		actions = append(actions, "Schedule immediate retention outreach")
	case LevelMedium:
		actions = append(actions, "Queue proactive engagement campaign")
	}
	if signals.RecentComplaintCount > 0 {
		actions = append(actions, "Review and resolve open support complaints")
	}
	if customer.SatisfactionScore < 5.0 {
		actions = append(actions, "Send satisfaction follow-up survey")
	}
	// 固定收尾动作，保证 Actions 非空
	actions = append(actions, "Continue standard monitoring")

	return &Result{
		Score:   score,
		Level:   level,
		Factors: factors,
		Actions: actions,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
