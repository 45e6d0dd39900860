package risk

import (
	"strings"
	"testing"

	"github.com/customer360/rankkit/core"
)

func TestScorer_LevelOf(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{0.39999, LevelLow},
		{0.4, LevelMedium},
		{0.69999, LevelMedium},
		{0.7, LevelHigh},
		{1.0, LevelHigh},
	}

	for _, tt := range tests {
		if got := s.LevelOf(tt.score); got != tt.want {
			t.Errorf("LevelOf(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

// 分级必须随 score 单调不降，且三个等级无缝覆盖 [0,1]。
func TestScorer_LevelMonotonic(t *testing.T) {
	s := NewScorer()

	rank := map[Level]int{LevelLow: 0, LevelMedium: 1, LevelHigh: 2}
	prev := -1
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 1000
		lvl := s.LevelOf(score)
		r, ok := rank[lvl]
		if !ok {
			t.Fatalf("LevelOf(%v) returned unknown level %q", score, lvl)
		}
		if r < prev {
			t.Fatalf("level decreased at score %v", score)
		}
		prev = r
	}
}

func TestScorer_Assess(t *testing.T) {
	s := NewScorer()

	// 对应示例客户 CUST_003：高风险 + 低满意度
	customer := &core.CustomerProfile{
		ID:                "CUST_003",
		ChurnRiskScore:    0.78,
		SatisfactionScore: 3.1,
		EngagementScore:   0.5,
	}
	signals := core.BehaviorSignals{
		DaysSinceLastPurchase: 120,
		RecentComplaintCount:  2,
	}

	res := s.Assess(customer, signals)

	if res.Level != LevelHigh {
		t.Errorf("Level = %v, want HIGH", res.Level)
	}
	if res.Score != 0.78 {
		t.Errorf("Score = %v, want 0.78", res.Score)
	}

	wantFactor := func(substr string) {
		t.Helper()
		for _, f := range res.Factors {
			if strings.Contains(strings.ToLower(f), substr) {
				return
			}
		}
		t.Errorf("factors %v missing %q", res.Factors, substr)
	}
	wantFactor("low satisfaction score")
	wantFactor("no purchases in the last 120 days")
	wantFactor("2 recent support complaints")

	// 求值顺序即展示顺序：购买间隔因素先于满意度因素
	if len(res.Factors) < 2 || !strings.Contains(res.Factors[0], "purchases") {
		t.Errorf("factor order unexpected: %v", res.Factors)
	}

	if len(res.Actions) == 0 {
		t.Fatal("actions must never be empty")
	}
	if got := res.Actions[len(res.Actions)-1]; got != "Continue standard monitoring" {
		t.Errorf("last action = %q, want constant monitoring fallback", got)
	}
	if res.Actions[0] != "Schedule immediate retention outreach" {
		t.Errorf("high risk should lead with retention outreach, got %v", res.Actions)
	}
}

// 零值信号是中性值：不产生任何信号类因素。
func TestScorer_AssessNeutralSignals(t *testing.T) {
	s := NewScorer()
	customer := &core.CustomerProfile{
		ID:                "CUST_001",
		ChurnRiskScore:    0.1,
		SatisfactionScore: 8.5,
		EngagementScore:   0.9,
	}

	res := s.Assess(customer, core.BehaviorSignals{})

	if res.Level != LevelLow {
		t.Errorf("Level = %v, want LOW", res.Level)
	}
	if len(res.Factors) != 0 {
		t.Errorf("neutral signals should yield no factors, got %v", res.Factors)
	}
	if len(res.Actions) != 1 || res.Actions[0] != "Continue standard monitoring" {
		t.Errorf("Actions = %v, want only the monitoring fallback", res.Actions)
	}
}

// 评分越界时收敛到 [0,1]。
func TestScorer_AssessClampsScore(t *testing.T) {
	s := NewScorer()
	res := s.Assess(&core.CustomerProfile{ChurnRiskScore: 1.7, SatisfactionScore: 9}, core.BehaviorSignals{})
	if res.Score != 1.0 {
		t.Errorf("Score = %v, want clamped to 1.0", res.Score)
	}
	if res.Level != LevelHigh {
		t.Errorf("Level = %v, want HIGH", res.Level)
	}
}
