package filter

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pkg/dsl"
)

// RuleFilter 是规则驱动的过滤器：CEL 表达式命中的候选被过滤掉。
// 规则可以直接写在 Pipeline 配置里，例如：
//
//	type: filter
//	config:
//	  filters:
//	    - type: rule
//	      expr: 'item.score < 0.05'
type RuleFilter struct {
	// Expr 是 CEL 表达式；为空时不过滤任何候选
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}

	matched, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		// 表达式错误不拦截候选，交由 FilterNode 忽略
		return false, err
	}
	return matched, nil
}
