package profile

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tripkit/core"
)

// PreferenceSource 是用户偏好标签的外部来源（冷启动兜底）。
// 返回 tag → weight 映射；无数据返回空映射。
type PreferenceSource interface {
	GetPreferredTags(ctx context.Context, userID string) (map[string]float64, error)
}

// UserBuilder 从行为历史聚合用户兴趣画像。
//
// 聚合口径：
//   - 文本标签：每次出现累加 1 × 行为倍数 —— 文本标签的强度是曝光频次，
//     而不是标签自带权重
//   - 图像标签：累加 上游置信权重 × 行为倍数 —— 图像标签已携带打标置信度，
//     只做缩放不做计数
//   - 最终权重 round 到 3 位小数，两个标签列表各自按权重降序
//
// 单条内容的标签解析失败按“该条行为无标签”处理，不中断聚合；
// 零行为用户得到空画像（合法状态）。
type UserBuilder struct {
	Interactions core.InteractionStore
	Tags         core.ContentTagStore

	// Actions 是行为加权策略表；nil 时使用 DefaultActionWeights。
	Actions ActionWeights

	// Prefs 是可选的冷启动偏好来源（如 Feast 在线特征）。
	// 仅当聚合结果完全为空时才会启用，聚合得到的画像永远优先。
	Prefs PreferenceSource

	// MaxConcurrent 是 BuildAll 的最大并发数（0 表示不限制）。
	MaxConcurrent int
}

// Build 构建单个用户的兴趣画像。
func (b *UserBuilder) Build(ctx context.Context, userID string) (*core.Profile, error) {
	interactions, err := b.Interactions.GetUserInteractions(ctx, userID)
	if err != nil {
		return nil, err
	}

	actions := b.Actions
	if actions == nil {
		actions = DefaultActionWeights()
	}

	textAcc := make(map[string]float64)
	imageAcc := make(map[string]float64)

	for _, inter := range interactions {
		tags, err := b.Tags.GetContentTags(ctx, inter.ContentID)
		if err != nil || tags == nil {
			// 标签缺失 = 该条行为贡献为零
			continue
		}

		mult := actions.WeightOf(inter.Action)
		for _, tag := range tags.TextTags {
			if tag == "" {
				continue
			}
			textAcc[tag] += 1 * mult
		}
		for tag, w := range ExtractTagProfile(tags.ImageTags) {
			imageAcc[tag] += w * mult
		}
	}

	// 冷启动兜底：聚合为空时尝试外部偏好来源；来源失败照旧返回空画像
	if len(textAcc) == 0 && len(imageAcc) == 0 && b.Prefs != nil {
		if prefs, err := b.Prefs.GetPreferredTags(ctx, userID); err == nil {
			for tag, w := range prefs {
				if validTagWeight(tag, w) {
					textAcc[tag] = w
				}
			}
		}
	}

	return &core.Profile{
		TextTags:  sortedTagWeights(textAcc),
		ImageTags: sortedTagWeights(imageAcc),
	}, nil
}

// BuildAll 并发构建一批用户的画像，返回 userID → Profile。
// 画像互相独立，可自由并行；调用方在所有画像就绪后才构建词表（同步屏障）。
// 单个用户构建失败按“该用户缺席”处理，不影响其余用户。
func (b *UserBuilder) BuildAll(ctx context.Context, userIDs []string) (map[string]*core.Profile, error) {
	var (
		mu       sync.Mutex
		profiles = make(map[string]*core.Profile, len(userIDs))
		eg, gctx = errgroup.WithContext(ctx)
	)
	if b.MaxConcurrent > 0 {
		eg.SetLimit(b.MaxConcurrent)
	}

	for _, userID := range userIDs {
		uid := userID
		eg.Go(func() error {
			p, err := b.Build(gctx, uid)
			if err != nil {
				return nil
			}
			mu.Lock()
			profiles[uid] = p
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}
