package core

import "sort"

// TagWeight 是一条带权标签。
// 约定：Tag 非空，Weight 为非负实数；不满足约定的条目由 profile.ExtractTagProfile 静默跳过。
type TagWeight struct {
	Tag    string  `json:"tag"`
	Weight float64 `json:"weight"`
}

// Profile 是用户兴趣或页面内容的带权标签画像。
// 文本标签与图像标签是两个独立的标签空间，任何相似度计算都不会把二者混入同一词表。
type Profile struct {
	TextTags  []TagWeight `json:"text_tags"`
	ImageTags []TagWeight `json:"image_tags"`
}

// IsEmpty 判断画像是否完全为空（既无文本标签也无图像标签）。
// 零交互用户的画像为空是合法状态，不是错误。
func (p *Profile) IsEmpty() bool {
	return p == nil || (len(p.TextTags) == 0 && len(p.ImageTags) == 0)
}

// TextMap 将文本标签投影为 tag → weight 映射（相似度计算的输入形态）。
func (p *Profile) TextMap() map[string]float64 {
	if p == nil {
		return nil
	}
	return tagWeightMap(p.TextTags)
}

// ImageMap 将图像标签投影为 tag → weight 映射。
func (p *Profile) ImageMap() map[string]float64 {
	if p == nil {
		return nil
	}
	return tagWeightMap(p.ImageTags)
}

func tagWeightMap(tags []TagWeight) map[string]float64 {
	if len(tags) == 0 {
		return map[string]float64{}
	}
	m := make(map[string]float64, len(tags))
	for _, tw := range tags {
		m[tw.Tag] = tw.Weight
	}
	return m
}

// SortTagWeights 按权重降序排列标签列表（展示约定；排序逻辑不依赖该顺序）。
// 同权重保持输入相对顺序。
func SortTagWeights(tags []TagWeight) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Weight > tags[j].Weight
	})
}
