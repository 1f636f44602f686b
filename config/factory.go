// Package config 把 YAML/JSON 配置组装成可运行的 Pipeline。
//
// 召回节点依赖数据接口（行为/内容标签/页面），无法从纯配置凭空构造，
// 因此工厂通过 Deps 注入运行时依赖，配置只负责算法参数：
//
//	factory := config.DefaultFactory(config.Deps{
//	    Interactions: adapter,
//	    Tags:         adapter,
//	    Pages:        adapter,
//	})
//	cfg, _ := pipeline.LoadFromYAML("pipeline.yaml")
//	p, _ := cfg.BuildPipeline(factory)
package config

import (
	"fmt"
	"time"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/filter"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/pkg/conv"
	"github.com/rushteam/tripkit/profile"
	"github.com/rushteam/tripkit/recall"
	"github.com/rushteam/tripkit/rerank"
)

// Deps 是配置驱动模式下节点所需的运行时依赖。
type Deps struct {
	Interactions core.InteractionStore
	Tags         core.ContentTagStore
	Pages        core.PageStore

	// Actions 行为加权策略表；nil 时取默认（Like 三倍）
	Actions profile.ActionWeights

	// Prefs 可选的冷启动偏好来源
	Prefs profile.PreferenceSource
}

func (d Deps) userBuilder() *profile.UserBuilder {
	return &profile.UserBuilder{
		Interactions: d.Interactions,
		Tags:         d.Tags,
		Actions:      d.Actions,
		Prefs:        d.Prefs,
	}
}

func (d Deps) pageBuilder() *profile.PageBuilder {
	return &profile.PageBuilder{Pages: d.Pages, Tags: d.Tags}
}

// DefaultFactory 返回包含所有内置 Node 的默认工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// Recall Nodes
	factory.Register("recall.cf", func(cfg map[string]any) (pipeline.Node, error) {
		return buildCFNode(deps, cfg)
	})
	factory.Register("recall.content", func(cfg map[string]any) (pipeline.Node, error) {
		return buildContentNode(deps, cfg)
	})
	factory.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFanoutNode(deps, cfg)
	})

	// Filter Nodes
	factory.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFilterNode(deps, cfg)
	})

	// ReRank Nodes
	factory.Register("rerank.topn", buildTopNNode)

	return factory
}

func buildCFNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	node := &recall.UserCF{
		Users:        deps.userBuilder(),
		Interactions: deps.Interactions,
	}
	if n := conv.ConfigGetInt64(cfg, "neighbor_pool_size", 0); n > 0 {
		node.NeighborPoolSize = int(n)
	}
	if n := conv.ConfigGetInt64(cfg, "top_n", 0); n > 0 {
		node.TopN = int(n)
	}
	node.TextWeight = conv.ConfigGet[float64](cfg, "text_weight", 0)
	node.ImageWeight = conv.ConfigGet[float64](cfg, "image_weight", 0)
	return node, nil
}

func buildContentNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	return &recall.ContentRecall{
		Users:        deps.userBuilder(),
		PageProfiles: deps.pageBuilder(),
		Pages:        deps.Pages,
		Weights: recall.Weights{
			Text:  conv.ConfigGet[float64](cfg, "text_weight", 0),
			Image: conv.ConfigGet[float64](cfg, "image_weight", 0),
		},
	}, nil
}

func buildFanoutNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet[string](sourceMap, "type", "")
		switch sourceType {
		case "cf":
			node, err := buildCFNode(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.UserCF))
		case "content":
			node, err := buildContentNode(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.ContentRecall))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet[bool](cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet[string](cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildFilterNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet[string](filterMap, "type", "")
		switch filterType {
		case "visited":
			filters = append(filters, &filter.VisitedFilter{Store: deps.Interactions})
		case "rule":
			expr := conv.ConfigGet[string](filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter: expr not found")
			}
			filters = append(filters, &filter.RuleFilter{Expr: expr})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("rerank.topn: n must be positive")
	}
	return &rerank.TopNNode{N: int(n)}, nil
}
