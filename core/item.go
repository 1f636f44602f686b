package core

import "github.com/rushteam/tripkit/pkg/utils"

// Item 是推荐链路中的统一承载结构：页面（POI）候选、分数、展示元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；Meta 由编排层回填展示字段（name/cover 等）。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutMeta 写入展示元信息（编排层 enrich 用）。
func (it *Item) PutMeta(key string, value any) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta[key] = value
}
