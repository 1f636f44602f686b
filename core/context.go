package core

import "github.com/rushteam/tripkit/pkg/utils"

// RecommendContext 承载用户/场景/请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string

	// Month 是季节性推荐的目标月份（1-12），0 表示不做季节过滤。
	Month int

	// User 是已构建好的用户画像；为空时由召回节点按需构建。
	User *Profile

	// Labels 是用户级标签，可驱动整个 Pipeline 行为（新用户、重度用户等）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（latitude、longitude、query 等）。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
