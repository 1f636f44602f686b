// Package hybrid 把画像聚合、两路召回与结果 enrich 编排成对外的推荐接口。
//
// 三种推荐模式共用同一套 Pipeline 形态：
//   - SuggestByCollaborativeFiltering：用户协同过滤（邻居相似度投票）
//   - SuggestByContent：内容相似度匹配
//   - SuggestByMonth：内容匹配的季节变体（按月份预过滤候选）
//
// 三个操作对持久化状态只读：只聚合、只打分，绝不回写。
// 引擎自身不持有跨请求状态，画像与词表都按请求重建。
package hybrid

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/filter"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/profile"
	"github.com/rushteam/tripkit/recall"
	"github.com/rushteam/tripkit/rerank"
)

// Engine 是混合推荐引擎。三个数据接口（行为/内容标签/页面）为必填，
// 其余字段零值即默认行为。
type Engine struct {
	Interactions core.InteractionStore
	Tags         core.ContentTagStore
	Pages        core.PageStore

	// Actions 行为加权策略表；nil 时 Like 三倍于浏览
	Actions profile.ActionWeights

	// Prefs 可选的冷启动偏好来源（Feast 等）
	Prefs profile.PreferenceSource

	// ContentWeights 内容召回合成权重；零值取 {Text: 0.6, Image: 0.4}
	ContentWeights recall.Weights

	// NeighborPoolSize 协同过滤内部邻居池大小；<=0 取 DefaultNeighborPoolSize
	NeighborPoolSize int

	// TopN 最终返回条数；<=0 取 DefaultCFTopN
	TopN int

	// MaxConcurrent 画像批量构建的最大并发数（0 表示不限制）
	MaxConcurrent int
}

// SuggestByCollaborativeFiltering 基于相似用户的访问行为推荐页面。
// 结果已排除目标用户访问过的页面，并按分数降序携带展示元信息。
func (e *Engine) SuggestByCollaborativeFiltering(ctx context.Context, userID string) ([]*core.Item, error) {
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleHybrid, core.ErrorCodeInvalidInput, "hybrid: user id is required")
	}

	rctx := &core.RecommendContext{UserID: userID, Scene: "suggest.cf"}
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.UserCF{
				Users:            e.userBuilder(),
				Interactions:     e.Interactions,
				NeighborPoolSize: e.NeighborPoolSize,
				TopN:             e.topN(),
			},
			// 召回自身已排除已访问页面；过滤节点兜底多路合并等扩展场景
			&filter.FilterNode{Filters: []filter.Filter{
				&filter.VisitedFilter{Store: e.Interactions},
			}},
			&rerank.TopNNode{N: e.topN()},
		},
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	return e.enrich(ctx, items), nil
}

// SuggestByContent 基于用户画像与页面画像的内容相似度推荐页面。
// 用户画像为空（零行为且无冷启动偏好）时返回空结果，不是错误。
func (e *Engine) SuggestByContent(ctx context.Context, userID string) ([]*core.Item, error) {
	return e.suggestContent(ctx, userID, 0)
}

// SuggestByMonth 是 SuggestByContent 的季节变体：只考虑适宜月份包含 month 的页面。
// month 不在 [1,12] 时返回 INVALID_INPUT（声明式拒绝）；
// 该月份无任何适宜页面时返回空结果（成功状态）。
func (e *Engine) SuggestByMonth(ctx context.Context, userID string, month int) ([]*core.Item, error) {
	if month < 1 || month > 12 {
		return nil, core.NewDomainError(core.ModuleHybrid, core.ErrorCodeInvalidInput, "hybrid: month must be in [1, 12]")
	}
	return e.suggestContent(ctx, userID, month)
}

func (e *Engine) suggestContent(ctx context.Context, userID string, month int) ([]*core.Item, error) {
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleHybrid, core.ErrorCodeInvalidInput, "hybrid: user id is required")
	}

	rctx := &core.RecommendContext{UserID: userID, Scene: "suggest.content", Month: month}
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.ContentRecall{
				Users:        e.userBuilder(),
				PageProfiles: e.pageBuilder(),
				Pages:        e.Pages,
				Weights:      e.ContentWeights,
			},
			&rerank.TopNNode{N: e.topN()},
		},
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	return e.enrich(ctx, items), nil
}

// enrich 为每个结果回填页面展示元信息，保持分数顺序不变。
// 单个页面元信息缺失只影响该条的展示字段，不影响结果集。
func (e *Engine) enrich(ctx context.Context, items []*core.Item) []*core.Item {
	if e.Pages == nil {
		return items
	}
	for _, it := range items {
		meta, err := e.Pages.GetPageMeta(ctx, it.ID)
		if err != nil || meta == nil {
			continue
		}
		it.PutMeta("name", meta.Name)
		it.PutMeta("cover", meta.Cover)
	}
	return items
}

func (e *Engine) userBuilder() *profile.UserBuilder {
	return &profile.UserBuilder{
		Interactions:  e.Interactions,
		Tags:          e.Tags,
		Actions:       e.Actions,
		Prefs:         e.Prefs,
		MaxConcurrent: e.MaxConcurrent,
	}
}

func (e *Engine) pageBuilder() *profile.PageBuilder {
	return &profile.PageBuilder{
		Pages:         e.Pages,
		Tags:          e.Tags,
		MaxConcurrent: e.MaxConcurrent,
	}
}

func (e *Engine) topN() int {
	if e.TopN > 0 {
		return e.TopN
	}
	return recall.DefaultCFTopN
}
