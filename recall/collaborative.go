package recall

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pipeline"
	"github.com/rushteam/tripkit/pkg/utils"
	"github.com/rushteam/tripkit/pkg/vector"
	"github.com/rushteam/tripkit/profile"
)

// DefaultNeighborPoolSize 是邻居池的默认大小。
// 固定内部池大小与对外的 TopN 解耦：在向候选页面投票之前先保证足够的邻居质量；
// 是否应随 TopN 缩放仍是开放问题，故保留为可配置字段而非写死。
const DefaultNeighborPoolSize = 10

// DefaultCFTopN 是协同过滤最终返回的默认条数。
const DefaultCFTopN = 20

// UserCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，喜欢相似的页面"
//
// 算法流程：
//  1. 对全体用户画像分别构建文本/图像两个共享词表（每次调用重建，不跨请求缓存）
//  2. 逐个用户计算与目标的 textSim / imageSim，combined 按权重合成（默认各 0.5，
//     即 (text+image)/2 的固定等权混合）
//  3. 仅保留 combined > 0 的邻居，降序取前 NeighborPoolSize 个
//  4. 对每个邻居访问过、而目标用户没访问过的页面累加 combined（相似度加权投票，不取平均）
//  5. 按累计得分降序返回前 TopN；同分保持首次出现顺序
//
// 边界情况：
//   - 无正相似度邻居 ⇒ 空结果（不是错误）
//   - 零行为用户既是合法目标也是合法邻居（与任何人相似度为零，自然不产生贡献）
type UserCF struct {
	// Users 构建全体用户画像（Recall 节点形态使用；Rank 可直接喂画像）
	Users *profile.UserBuilder

	// Interactions 提供用户 ↔ 页面的行为数据
	Interactions core.InteractionStore

	// NeighborPoolSize 内部邻居池大小；<=0 时取 DefaultNeighborPoolSize
	NeighborPoolSize int

	// TopN 最终返回条数；<=0 时取 DefaultCFTopN
	TopN int

	// TextWeight / ImageWeight 是相似度合成权重；均为 0 时取 0.5/0.5（保持观测行为）
	TextWeight  float64
	ImageWeight float64
}

func (r *UserCF) Name() string        { return "recall.cf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口：构建全体画像后委托 Rank。
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Users == nil || r.Interactions == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	userIDs, err := r.Interactions.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := r.Users.BuildAll(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return r.Rank(ctx, rctx.UserID, profiles)
}

// Rank 在给定的全量画像上执行协同过滤排序。
// profiles 须包含目标用户（缺席按空画像处理）。
func (r *UserCF) Rank(
	ctx context.Context,
	targetUserID string,
	profiles map[string]*core.Profile,
) ([]*core.Item, error) {
	target := profiles[targetUserID]

	// 画像遍历顺序确定化，保证结果可复现
	userIDs := make([]string, 0, len(profiles))
	for userID := range profiles {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	// 1. 两个标签空间各自构建共享词表（包含目标在内的全体画像）
	textProfiles := make([]map[string]float64, 0, len(profiles))
	imageProfiles := make([]map[string]float64, 0, len(profiles))
	for _, userID := range userIDs {
		textProfiles = append(textProfiles, profiles[userID].TextMap())
		imageProfiles = append(imageProfiles, profiles[userID].ImageMap())
	}
	textVocab := vector.BuildVocabulary(textProfiles...)
	imageVocab := vector.BuildVocabulary(imageProfiles...)

	targetText := target.TextMap()
	targetImage := target.ImageMap()

	textWeight, imageWeight := r.TextWeight, r.ImageWeight
	if textWeight == 0 && imageWeight == 0 {
		textWeight, imageWeight = 0.5, 0.5
	}

	// 2-3. 计算合成相似度，保留正相似度邻居，取 TopK 池
	type neighbor struct {
		userID   string
		combined float64
	}
	neighbors := make([]neighbor, 0)

	for _, userID := range userIDs {
		if userID == targetUserID {
			continue
		}
		p := profiles[userID]
		textSim := vector.Cosine(targetText, p.TextMap(), textVocab)
		imageSim := vector.Cosine(targetImage, p.ImageMap(), imageVocab)
		combined := textSim*textWeight + imageSim*imageWeight
		if combined > 0 {
			neighbors = append(neighbors, neighbor{userID: userID, combined: combined})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].combined > neighbors[j].combined
	})
	poolSize := r.NeighborPoolSize
	if poolSize <= 0 {
		poolSize = DefaultNeighborPoolSize
	}
	if len(neighbors) > poolSize {
		neighbors = neighbors[:poolSize]
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	// 4. 目标已访问页面不参与投票
	visited, err := visitedPages(ctx, r.Interactions, targetUserID)
	if err != nil {
		return nil, err
	}

	pageScores := make(map[string]float64)
	pageOrder := make([]string, 0) // 首次出现顺序，同分 tie-break 用
	for _, nb := range neighbors {
		pages, err := visitedPageList(ctx, r.Interactions, nb.userID)
		if err != nil {
			// 单个邻居数据缺失只意味着该邻居不投票
			continue
		}
		for _, pageID := range pages {
			if _, ok := visited[pageID]; ok {
				continue
			}
			if _, ok := pageScores[pageID]; !ok {
				pageOrder = append(pageOrder, pageID)
			}
			pageScores[pageID] += nb.combined
		}
	}

	// 5. 降序取 TopN，同分保持首次出现顺序
	sort.SliceStable(pageOrder, func(i, j int) bool {
		return pageScores[pageOrder[i]] > pageScores[pageOrder[j]]
	})
	topN := r.TopN
	if topN <= 0 {
		topN = DefaultCFTopN
	}
	if len(pageOrder) > topN {
		pageOrder = pageOrder[:topN]
	}

	out := make([]*core.Item, 0, len(pageOrder))
	for _, pageID := range pageOrder {
		it := core.NewItem(pageID)
		it.Score = pageScores[pageID]
		it.PutLabel("recall_source", utils.Label{Value: "cf", Source: "recall"})
		it.PutLabel("cf_neighbors", utils.Label{Value: strconv.Itoa(len(neighbors)), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// visitedPages 返回用户访问过的页面集合。
func visitedPages(ctx context.Context, store core.InteractionStore, userID string) (map[string]struct{}, error) {
	list, err := visitedPageList(ctx, store, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(list))
	for _, pageID := range list {
		set[pageID] = struct{}{}
	}
	return set, nil
}

// visitedPageList 返回用户访问过的页面（按行为记录顺序去重）。
func visitedPageList(ctx context.Context, store core.InteractionStore, userID string) ([]string, error) {
	interactions, err := store.GetUserInteractions(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(interactions))
	out := make([]string, 0, len(interactions))
	for _, inter := range interactions {
		if inter.PageID == "" {
			continue
		}
		if _, ok := seen[inter.PageID]; ok {
			continue
		}
		seen[inter.PageID] = struct{}{}
		out = append(out, inter.PageID)
	}
	return out, nil
}
