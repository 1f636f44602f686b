package filter

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/tripkit/core"
)

type fakeInteractions struct {
	records map[string][]core.Interaction
	fail    bool
}

func (f *fakeInteractions) GetUserInteractions(_ context.Context, userID string) ([]core.Interaction, error) {
	if f.fail {
		return nil, fmt.Errorf("store unavailable")
	}
	return f.records[userID], nil
}

func (f *fakeInteractions) GetAllUsers(_ context.Context) ([]string, error) {
	return nil, nil
}

func items(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func TestVisitedFilter(t *testing.T) {
	store := &fakeInteractions{
		records: map[string][]core.Interaction{
			"alice": {
				{UserID: "alice", ContentID: "c1", PageID: "p1", Action: "View"},
				{UserID: "alice", ContentID: "c2", Action: "View"}, // 无 PageID，不计入访问集
			},
		},
	}
	node := &FilterNode{Filters: []Filter{&VisitedFilter{Store: store}}}
	rctx := &core.RecommendContext{UserID: "alice"}

	out, err := node.Process(context.Background(), rctx, items("p1", "p2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "p2" {
		t.Errorf("p1 已访问应被过滤，期望只剩 p2: %v", out)
	}
}

func TestVisitedFilter_InstanceReuse(t *testing.T) {
	// 配置驱动的 Pipeline 复用同一个节点实例；访问集必须按当前请求的用户加载
	store := &fakeInteractions{
		records: map[string][]core.Interaction{
			"alice": {{UserID: "alice", ContentID: "c1", PageID: "p1", Action: "View"}},
			"bob":   {{UserID: "bob", ContentID: "c2", PageID: "p2", Action: "View"}},
		},
	}
	node := &FilterNode{Filters: []Filter{&VisitedFilter{Store: store}}}
	ctx := context.Background()

	out, err := node.Process(ctx, &core.RecommendContext{UserID: "alice"}, items("p1", "p2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "p2" {
		t.Fatalf("alice 只访问过 p1，期望剩 p2: %v", out)
	}

	out, err = node.Process(ctx, &core.RecommendContext{UserID: "bob"}, items("p1", "p2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Errorf("bob 只访问过 p2，不应沿用 alice 的访问集: %v", out)
	}
}

func TestVisitedFilter_LoadFailure(t *testing.T) {
	// 访问集加载失败按"无访问记录"处理，不拦截任何候选
	node := &FilterNode{Filters: []Filter{&VisitedFilter{Store: &fakeInteractions{fail: true}}}}
	rctx := &core.RecommendContext{UserID: "alice"}

	out, err := node.Process(context.Background(), rctx, items("p1", "p2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("加载失败不应过滤候选: %v", out)
	}
}

func TestRuleFilter(t *testing.T) {
	low := core.NewItem("p-low")
	low.Score = 0.01
	high := core.NewItem("p-high")
	high.Score = 0.9

	node := &FilterNode{Filters: []Filter{&RuleFilter{Expr: "item.score < 0.05"}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, []*core.Item{low, high})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "p-high" {
		t.Errorf("低分候选应被规则过滤: %v", out)
	}
	// 被过滤的候选携带过滤原因标签
	if low.Labels["filtered"].Source != "filter.rule" {
		t.Errorf("过滤原因期望 filter.rule，实际 %+v", low.Labels["filtered"])
	}
}

func TestRuleFilter_EmptyExpr(t *testing.T) {
	// 空表达式不过滤（区别于 DSL 层"空表达式恒为 true"的约定）
	f := &RuleFilter{}
	ok, err := f.ShouldFilter(context.Background(), nil, core.NewItem("p1"))
	if err != nil || ok {
		t.Errorf("空表达式不应过滤: ok=%v err=%v", ok, err)
	}
}

func TestFilterNode_FilterErrorIgnored(t *testing.T) {
	// 表达式错误的过滤器不拦截候选
	node := &FilterNode{Filters: []Filter{&RuleFilter{Expr: "item.score >"}}}
	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, items("p1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Errorf("过滤器错误不应移除候选: %v", out)
	}
}
