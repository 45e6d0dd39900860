package feast

import (
	"context"

	"github.com/customer360/rankkit/core"
)

// 默认的特征视图与特征名，与离线物化作业的 feature_view 定义对齐。
const (
	DefaultFeatureView = "customer_behavior"
	DefaultEntityKey   = "customer_id"
)

var defaultFeatureNames = []string{
	"days_since_last_purchase",
	"days_since_last_login",
	"recent_complaint_count",
	"recent_review_sentiment_avg",
	"recent_email_opens",
	"recent_site_visits",
}

// SignalSource 用 Feast 在线特征实现 core.SignalSource：
// 按客户 ID 拉取行为特征向量并映射为 BehaviorSignals。
// 缺失的特征按零值（中性）处理，不构成错误。
type SignalSource struct {
	Client Client

	// FeatureView 特征视图名；空值用 DefaultFeatureView
	FeatureView string

	// EntityKey 实体键名；空值用 DefaultEntityKey
	EntityKey string
}

var _ core.SignalSource = (*SignalSource)(nil)

func NewSignalSource(client Client) *SignalSource {
	return &SignalSource{Client: client}
}

// FetchSignals 拉取客户行为信号。
func (s *SignalSource) FetchSignals(ctx context.Context, customerID string) (core.BehaviorSignals, error) {
	view := s.FeatureView
	if view == "" {
		view = DefaultFeatureView
	}
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	features := make([]string, 0, len(defaultFeatureNames))
	for _, name := range defaultFeatureNames {
		features = append(features, view+":"+name)
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{entityKey: customerID}},
	})
	if err != nil {
		return core.BehaviorSignals{}, err
	}
	if len(resp.FeatureVectors) == 0 {
		return core.BehaviorSignals{}, nil
	}

	values := resp.FeatureVectors[0].Values
	return core.BehaviorSignals{
		DaysSinceLastPurchase:    intFeature(values, view+":days_since_last_purchase"),
		DaysSinceLastLogin:       intFeature(values, view+":days_since_last_login"),
		RecentComplaintCount:     intFeature(values, view+":recent_complaint_count"),
		RecentReviewSentimentAvg: floatFeature(values, view+":recent_review_sentiment_avg"),
		RecentEmailOpens:         intFeature(values, view+":recent_email_opens"),
		RecentSiteVisits:         intFeature(values, view+":recent_site_visits"),
	}, nil
}

func floatFeature(values map[string]interface{}, name string) float64 {
	if f, ok := values[name].(float64); ok {
		return f
	}
	return 0
}

func intFeature(values map[string]interface{}, name string) int {
	return int(floatFeature(values, name))
}
