// Package tripkit 是一个旅行推荐引擎工具包（Trip Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 双路召回: 用户协同过滤（recall.UserCF）与内容相似度（recall.ContentRecall），
//   由 hybrid.Engine 统一编排为对外的推荐接口
package tripkit

import "github.com/rushteam/tripkit/pipeline"

// 轻量 facade：便于用户直接 import "tripkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
