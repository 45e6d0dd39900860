// Package rankkit 是一个客户 360 场景下的排序与多样化推荐引擎（Ranking Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（候选加载 → Filter → 打分 → ReRank）
// - 规则优先: 所有打分都是显式的加权规则（权重即配置），可审计、可单测、确定性
// - 可解释: 每个候选携带 match reasons 与全链路 Label，支持 explain / 观测
//
// 三个入口操作见 engine 包：Search（相关性检索）、Recommend（个性化推荐）、
// AssessRisk（流失风险评估）。
package rankkit

import "github.com/customer360/rankkit/pipeline"

// 轻量 facade：便于用户直接 import "rankkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
