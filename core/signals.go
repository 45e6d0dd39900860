package core

import "context"

// BehaviorSignals 是风险评估的行为信号输入。
// 零值即中性值：数据源缺失某个信号时不是错误，按“无证据”处理。
type BehaviorSignals struct {
	DaysSinceLastPurchase    int
	DaysSinceLastLogin       int
	RecentComplaintCount     int
	RecentReviewSentimentAvg float64 // [-1,1]，0 为中性
	RecentEmailOpens         int
	RecentSiteVisits         int
}

// SignalSource 是行为信号的获取接口。
// 实现可以来自 Feature Store（见 feast 包）或静态数据；
// 获取失败时调用方应退回中性信号，而不是中断评估。
type SignalSource interface {
	FetchSignals(ctx context.Context, customerID string) (BehaviorSignals, error)
}
