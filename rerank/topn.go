package rerank

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，在降序结果上截取前 N 个候选。
// 召回节点已保证降序；截断保持原有顺序，不重排。
//
// 使用场景：
//   - 多路召回合并/过滤后只保留 Top 10/20 个结果
//   - 控制推荐结果数量，降低 enrich 阶段的存储查询量
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.ContentRecall{...},
//	        &filter.FilterNode{...},
//	        &rerank.TopNNode{N: 20},
//	    },
//	}
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	// 如果 N <= 0 或 N >= len(items)，则返回所有候选（不截断）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
