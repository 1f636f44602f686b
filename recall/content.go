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

// Weights 是内容召回的文本/图像相似度合成权重。
type Weights struct {
	Text  float64
	Image float64
}

// DefaultWeights 返回观测行为的默认合成权重：文本 0.6、图像 0.4。
func DefaultWeights() Weights {
	return Weights{Text: 0.6, Image: 0.4}
}

// isZero 判断是否为未设置的零值（两个分量都是 0 才视为未设置，
// 允许调用方显式传 {Text:1, Image:0} 这类边界配置）。
func (w Weights) isZero() bool {
	return w.Text == 0 && w.Image == 0
}

// Candidate 是参与内容排序的候选页面：ID + 描述画像 + 可选的适宜月份。
type Candidate struct {
	ID      string
	Profile *core.Profile
	Months  []int // 1-12，空表示无季节属性
}

// InMonth 判断候选的适宜月份是否包含 month。
func (c Candidate) InMonth(month int) bool {
	for _, m := range c.Months {
		if m == month {
			return true
		}
	}
	return false
}

// RankCandidates 用内容相似度对候选页面排序（Content-Based Recommendation）。
//
// 算法流程：
//  1. 守卫：用户画像完全为空时返回 ErrEmptyProfile —— “没有推荐依据”
//     与“对零个候选排序”是两种状态，必须可区分
//  2. 用户画像 + 全体候选画像构建文本/图像两个共享词表（每次调用重建）
//  3. 逐候选计算 textScore / imageScore，combined = text*W.Text + image*W.Image
//  4. 按 combined 降序返回全部候选；本层不做 TopN 截断（由调用方截断），
//     同分保持输入顺序
func RankCandidates(user *core.Profile, candidates []Candidate, w Weights) ([]*core.Item, error) {
	if user.IsEmpty() {
		return nil, core.ErrEmptyProfile
	}
	if w.isZero() {
		w = DefaultWeights()
	}

	userText := user.TextMap()
	userImage := user.ImageMap()

	textProfiles := make([]map[string]float64, 0, len(candidates)+1)
	imageProfiles := make([]map[string]float64, 0, len(candidates)+1)
	textProfiles = append(textProfiles, userText)
	imageProfiles = append(imageProfiles, userImage)
	for _, c := range candidates {
		textProfiles = append(textProfiles, c.Profile.TextMap())
		imageProfiles = append(imageProfiles, c.Profile.ImageMap())
	}
	textVocab := vector.BuildVocabulary(textProfiles...)
	imageVocab := vector.BuildVocabulary(imageProfiles...)

	out := make([]*core.Item, 0, len(candidates))
	for _, c := range candidates {
		textScore := vector.Cosine(userText, c.Profile.TextMap(), textVocab)
		imageScore := vector.Cosine(userImage, c.Profile.ImageMap(), imageVocab)
		combined := textScore*w.Text + imageScore*w.Image

		it := core.NewItem(c.ID)
		it.Score = combined
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("sim_text", utils.Label{Value: formatScore(textScore), Source: "recall"})
		it.PutLabel("sim_image", utils.Label{Value: formatScore(imageScore), Source: "recall"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}

// RankCandidatesByMonth 是 RankCandidates 的季节变体：先按月份过滤候选再排序。
// 过滤后候选为空时返回空结果（不是错误），也不回退到未过滤候选集。
func RankCandidatesByMonth(user *core.Profile, candidates []Candidate, month int, w Weights) ([]*core.Item, error) {
	if user.IsEmpty() {
		return nil, core.ErrEmptyProfile
	}

	inSeason := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.InMonth(month) {
			inSeason = append(inSeason, c)
		}
	}
	if len(inSeason) == 0 {
		return []*core.Item{}, nil
	}
	return RankCandidates(user, inSeason, w)
}

// ContentRecall 是基于内容的召回源/节点。
// 将目标用户画像与每个候选页面画像做相似度匹配。
type ContentRecall struct {
	// Users 构建目标用户画像（rctx.User 已就绪时跳过）
	Users *profile.UserBuilder

	// PageProfiles 构建候选页面画像
	PageProfiles *profile.PageBuilder

	// Pages 提供候选页面池及季节属性
	Pages core.PageStore

	// Weights 相似度合成权重；零值取 DefaultWeights
	Weights Weights
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口。
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。rctx.Month > 0 时走季节变体。
// 空画像在节点形态下表现为空结果（哨兵错误只保留在 Rank* API 上，
// 以免中断整条 Pipeline）。
func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Pages == nil || r.PageProfiles == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	user := rctx.User
	if user == nil {
		if r.Users == nil {
			return nil, nil
		}
		built, err := r.Users.Build(ctx, rctx.UserID)
		if err != nil {
			return nil, err
		}
		user = built
	}

	candidates, err := r.BuildCandidates(ctx)
	if err != nil {
		return nil, err
	}

	var items []*core.Item
	if rctx.Month > 0 {
		items, err = RankCandidatesByMonth(user, candidates, rctx.Month, r.Weights)
	} else {
		items, err = RankCandidates(user, candidates, r.Weights)
	}
	if err != nil {
		if core.IsEmptyProfile(err) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

// BuildCandidates 把候选页面池物化成 Candidate 列表（画像并发构建）。
// 单个页面画像缺失按候选缺席处理；目的地记录缺失只意味着无季节属性。
func (r *ContentRecall) BuildCandidates(ctx context.Context) ([]Candidate, error) {
	pageIDs, err := r.Pages.GetAllPages(ctx)
	if err != nil {
		return nil, err
	}

	pageProfiles, err := r.PageProfiles.BuildAll(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(pageIDs))
	for _, pageID := range pageIDs {
		p, ok := pageProfiles[pageID]
		if !ok {
			continue
		}
		c := Candidate{ID: pageID, Profile: p}
		if dest, err := r.Pages.GetPageDestination(ctx, pageID); err == nil && dest != nil {
			c.Months = dest.Months
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
