package profile

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tripkit/core"
)

// PageBuilder 从页面挂载的内容聚合页面描述画像。
//
// 聚合口径：
//   - 文本标签：按挂载内容的平均出现率计 —— weight = 携带该标签的内容数 / 内容总数，
//     即逐条内容 0/1 出现的算术平均，不是总次数
//   - 图像标签：对各条内容的带权图像标签直接求和（不平均）
//   - 目的地加成：页面关联目的地记录时，其分类标签在文本权重上 +1，
//     不存在的标签按权重 1 插入 —— 人工维护的目的地元数据作为平铺加成
//     叠在内容派生标签之上
//
// 与用户画像一致：单条内容解析失败只意味着该条贡献为零。
type PageBuilder struct {
	Pages core.PageStore
	Tags  core.ContentTagStore

	// MaxConcurrent 是 BuildAll 的最大并发数（0 表示不限制）。
	MaxConcurrent int
}

// Build 构建单个页面的描述画像。
func (b *PageBuilder) Build(ctx context.Context, pageID string) (*core.Profile, error) {
	contentIDs, err := b.Pages.GetPageContents(ctx, pageID)
	if err != nil {
		return nil, err
	}

	textCount := make(map[string]float64) // 携带该标签的内容条数
	imageAcc := make(map[string]float64)
	total := 0

	for _, contentID := range contentIDs {
		tags, err := b.Tags.GetContentTags(ctx, contentID)
		if err != nil || tags == nil {
			continue
		}
		total++

		// 单条内容内去重：出现率按 0/1 记
		seen := make(map[string]struct{}, len(tags.TextTags))
		for _, tag := range tags.TextTags {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			textCount[tag]++
		}
		for tag, w := range ExtractTagProfile(tags.ImageTags) {
			imageAcc[tag] += w
		}
	}

	textAcc := make(map[string]float64, len(textCount))
	if total > 0 {
		for tag, cnt := range textCount {
			textAcc[tag] = cnt / float64(total)
		}
	}

	// 目的地加成；无关联目的地（NOT_FOUND）不是错误
	if dest, err := b.Pages.GetPageDestination(ctx, pageID); err == nil && dest != nil {
		for _, tag := range dest.Tags {
			if tag == "" {
				continue
			}
			textAcc[tag] += 1
		}
	}

	return &core.Profile{
		TextTags:  sortedTagWeights(textAcc),
		ImageTags: sortedTagWeights(imageAcc),
	}, nil
}

// BuildAll 并发构建一批页面的画像，返回 pageID → Profile。
// 单个页面构建失败按“该页面缺席”处理。
func (b *PageBuilder) BuildAll(ctx context.Context, pageIDs []string) (map[string]*core.Profile, error) {
	var (
		mu       sync.Mutex
		profiles = make(map[string]*core.Profile, len(pageIDs))
		eg, gctx = errgroup.WithContext(ctx)
	)
	if b.MaxConcurrent > 0 {
		eg.SetLimit(b.MaxConcurrent)
	}

	for _, pageID := range pageIDs {
		pid := pageID
		eg.Go(func() error {
			p, err := b.Build(gctx, pid)
			if err != nil {
				return nil
			}
			mu.Lock()
			profiles[pid] = p
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}
