package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/tripkit/core"
)

// ---------- 测试用内存数据源 ----------

type fakeData struct {
	interactions map[string][]core.Interaction
	users        []string
	contents     map[string]*core.ContentTags
	pages        []string
	pageContents map[string][]string
	destinations map[string]*core.Destination
	metas        map[string]*core.PageMeta
}

func (f *fakeData) GetUserInteractions(_ context.Context, userID string) ([]core.Interaction, error) {
	return f.interactions[userID], nil
}

func (f *fakeData) GetAllUsers(_ context.Context) ([]string, error) {
	return f.users, nil
}

func (f *fakeData) GetContentTags(_ context.Context, contentID string) (*core.ContentTags, error) {
	tags, ok := f.contents[contentID]
	if !ok {
		return nil, fmt.Errorf("content %s not found", contentID)
	}
	return tags, nil
}

func (f *fakeData) GetAllPages(_ context.Context) ([]string, error) {
	return f.pages, nil
}

func (f *fakeData) GetPageContents(_ context.Context, pageID string) ([]string, error) {
	return f.pageContents[pageID], nil
}

func (f *fakeData) GetPageDestination(_ context.Context, pageID string) (*core.Destination, error) {
	dest, ok := f.destinations[pageID]
	if !ok {
		return nil, fmt.Errorf("destination for %s not found", pageID)
	}
	return dest, nil
}

func (f *fakeData) GetPageMeta(_ context.Context, pageID string) (*core.PageMeta, error) {
	meta, ok := f.metas[pageID]
	if !ok {
		return nil, fmt.Errorf("meta for %s not found", pageID)
	}
	return meta, nil
}

var (
	_ core.InteractionStore = (*fakeData)(nil)
	_ core.ContentTagStore  = (*fakeData)(nil)
	_ core.PageStore        = (*fakeData)(nil)
)

func weightOf(t *testing.T, tags []core.TagWeight, tag string) float64 {
	t.Helper()
	for _, tw := range tags {
		if tw.Tag == tag {
			return tw.Weight
		}
	}
	t.Fatalf("标签 %q 不在列表中: %v", tag, tags)
	return 0
}
