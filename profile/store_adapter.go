package profile

import (
	"context"
	"encoding/json"

	"github.com/rushteam/tripkit/core"
)

// StoreAdapter 是基于 core.Store 的数据适配器，以 JSON 文档形式实现
// InteractionStore / ContentTagStore / PageStore 三个领域接口。
//
// key 约定：
//   - 用户行为：{KeyPrefix}:interactions:{userID}
//   - 用户列表：{KeyPrefix}:users
//   - 内容标签：{KeyPrefix}:content:{contentID}
//   - 页面列表：{KeyPrefix}:pages
//   - 页面内容：{KeyPrefix}:page:{pageID}:contents
//   - 页面目的地：{KeyPrefix}:page:{pageID}:destination
//   - 页面元信息：{KeyPrefix}:page:{pageID}:meta
type StoreAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewStoreAdapter 创建一个基于 core.Store 的数据适配器。
func NewStoreAdapter(s core.Store, keyPrefix string) *StoreAdapter {
	if keyPrefix == "" {
		keyPrefix = "trip"
	}
	return &StoreAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

// Name 返回适配器名称（用于日志/监控）。
func (a *StoreAdapter) Name() string {
	return "store_adapter"
}

func (a *StoreAdapter) GetUserInteractions(ctx context.Context, userID string) ([]core.Interaction, error) {
	key := a.KeyPrefix + ":interactions:" + userID
	var result []core.Interaction
	if err := a.getJSON(ctx, key, &result); err != nil {
		if core.IsStoreNotFound(err) {
			return []core.Interaction{}, nil
		}
		return nil, err
	}
	return result, nil
}

func (a *StoreAdapter) GetAllUsers(ctx context.Context) ([]string, error) {
	var result []string
	if err := a.getJSON(ctx, a.KeyPrefix+":users", &result); err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return result, nil
}

func (a *StoreAdapter) GetContentTags(ctx context.Context, contentID string) (*core.ContentTags, error) {
	key := a.KeyPrefix + ":content:" + contentID
	var result core.ContentTags
	if err := a.getJSON(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *StoreAdapter) GetAllPages(ctx context.Context) ([]string, error) {
	var result []string
	if err := a.getJSON(ctx, a.KeyPrefix+":pages", &result); err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return result, nil
}

func (a *StoreAdapter) GetPageContents(ctx context.Context, pageID string) ([]string, error) {
	key := a.KeyPrefix + ":page:" + pageID + ":contents"
	var result []string
	if err := a.getJSON(ctx, key, &result); err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	return result, nil
}

func (a *StoreAdapter) GetPageDestination(ctx context.Context, pageID string) (*core.Destination, error) {
	key := a.KeyPrefix + ":page:" + pageID + ":destination"
	var result core.Destination
	if err := a.getJSON(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *StoreAdapter) GetPageMeta(ctx context.Context, pageID string) (*core.PageMeta, error) {
	key := a.KeyPrefix + ":page:" + pageID + ":meta"
	var result core.PageMeta
	if err := a.getJSON(ctx, key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *StoreAdapter) getJSON(ctx context.Context, key string, out any) error {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (a *StoreAdapter) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data)
}

var (
	_ core.InteractionStore = (*StoreAdapter)(nil)
	_ core.ContentTagStore  = (*StoreAdapter)(nil)
	_ core.PageStore        = (*StoreAdapter)(nil)
)

// ========== Seed 辅助方法：测试/示例准备数据 ==========

// SeedInteractions 写入一批行为记录，并维护用户列表。
func (a *StoreAdapter) SeedInteractions(ctx context.Context, interactions []core.Interaction) error {
	byUser := make(map[string][]core.Interaction)
	users := make([]string, 0)
	for _, inter := range interactions {
		if _, ok := byUser[inter.UserID]; !ok {
			users = append(users, inter.UserID)
		}
		byUser[inter.UserID] = append(byUser[inter.UserID], inter)
	}

	for userID, list := range byUser {
		if err := a.setJSON(ctx, a.KeyPrefix+":interactions:"+userID, list); err != nil {
			return err
		}
	}

	// 与已有用户列表合并，保持幂等
	existing, err := a.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(users))
	for _, u := range existing {
		seen[u] = struct{}{}
		merged = append(merged, u)
	}
	for _, u := range users {
		if _, ok := seen[u]; !ok {
			merged = append(merged, u)
		}
	}
	return a.setJSON(ctx, a.KeyPrefix+":users", merged)
}

// SeedUser 登记一个用户（可以没有任何行为记录）。
func (a *StoreAdapter) SeedUser(ctx context.Context, userID string) error {
	existing, err := a.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range existing {
		if u == userID {
			return nil
		}
	}
	return a.setJSON(ctx, a.KeyPrefix+":users", append(existing, userID))
}

// SeedContentTags 写入一条内容的标签集。
func (a *StoreAdapter) SeedContentTags(ctx context.Context, contentID string, tags core.ContentTags) error {
	return a.setJSON(ctx, a.KeyPrefix+":content:"+contentID, tags)
}

// SeedPage 写入一个页面的内容列表、展示元信息和可选的目的地记录，并维护页面列表。
func (a *StoreAdapter) SeedPage(ctx context.Context, pageID string, contentIDs []string, meta core.PageMeta, dest *core.Destination) error {
	if err := a.setJSON(ctx, a.KeyPrefix+":page:"+pageID+":contents", contentIDs); err != nil {
		return err
	}
	if err := a.setJSON(ctx, a.KeyPrefix+":page:"+pageID+":meta", meta); err != nil {
		return err
	}
	if dest != nil {
		if err := a.setJSON(ctx, a.KeyPrefix+":page:"+pageID+":destination", dest); err != nil {
			return err
		}
	}

	pages, err := a.GetAllPages(ctx)
	if err != nil {
		return err
	}
	for _, p := range pages {
		if p == pageID {
			return nil
		}
	}
	return a.setJSON(ctx, a.KeyPrefix+":pages", append(pages, pageID))
}
