package filter

import (
	"context"
	"sync"

	"github.com/rushteam/tripkit/core"
)

// VisitedFilter 过滤掉目标用户已经访问过的页面。
// 协同过滤召回自身已跳过已访问页面；本过滤器用于多路召回合并后的兜底
// （例如内容召回会把用户看过的页面重新排进来）。
//
// 配置驱动的 Pipeline 会长期复用同一个节点实例，因此访问集按 rctx.UserID
// 缓存最近一次加载，换用户即重载，不会把上一个用户的访问集串给下一个请求。
// 加载失败按“无访问记录”处理，不拦截任何候选。
type VisitedFilter struct {
	Store core.InteractionStore

	mu      sync.Mutex
	userID  string
	visited map[string]struct{}
}

func (f *VisitedFilter) Name() string {
	return "filter.visited"
}

func (f *VisitedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.UserID == "" || f.Store == nil {
		return false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visited == nil || f.userID != rctx.UserID {
		f.userID = rctx.UserID
		f.visited = make(map[string]struct{})
		if interactions, err := f.Store.GetUserInteractions(ctx, rctx.UserID); err == nil {
			for _, inter := range interactions {
				if inter.PageID != "" {
					f.visited[inter.PageID] = struct{}{}
				}
			}
		}
	}

	_, ok := f.visited[item.ID]
	return ok, nil
}
