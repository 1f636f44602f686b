// Package profile 把原始行为/内容记录聚合成带权标签画像。
//
// 聚合遵循三条策略：
//   - 行为加权是开放策略表（ActionWeights），新行为类型不需要改动聚合算法
//   - 畸形标签条目静默跳过（filter-and-continue），坏数据不允许打断整次聚合
//   - 单条上游记录解析失败按“贡献为零”处理，绝不向上冒泡为请求失败
package profile

import (
	"math"
	"sort"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pkg/conv"
)

// ActionWeights 是行为类型 → 权重倍数的策略表。
// 未登记的行为类型一律按 1 处理。
type ActionWeights map[string]float64

// DefaultActionWeights 返回默认策略：Like 三倍于普通浏览。
func DefaultActionWeights() ActionWeights {
	return ActionWeights{"Like": 3}
}

// WeightOf 返回行为的权重倍数；w 为 nil 或行为未登记时返回 1。
func (w ActionWeights) WeightOf(action string) float64 {
	if w == nil {
		return 1
	}
	if m, ok := w[action]; ok {
		return m
	}
	return 1
}

// ExtractTagProfile 将带权标签列表转为 tag → weight 映射。
// 不符合约定的条目（空 tag、NaN/Inf 或负数权重）被静默跳过；
// 重复 tag 理论上不该出现（聚合方已去重），出现时按 last-wins 处理。
// nil 输入产出空映射。
func ExtractTagProfile(tags []core.TagWeight) map[string]float64 {
	out := make(map[string]float64, len(tags))
	for _, tw := range tags {
		if !validTagWeight(tw.Tag, tw.Weight) {
			continue
		}
		out[tw.Tag] = tw.Weight
	}
	return out
}

// ExtractTagProfileAny 是 ExtractTagProfile 的宽松形态，接受未定型的
// 反序列化结果（[]any，元素为 {tag, weight} 映射）。
// 只有参数本身不是序列时才返回 INVALID_INPUT；元素级别的畸形照旧静默跳过。
func ExtractTagProfileAny(v any) (map[string]float64, error) {
	if v == nil {
		return map[string]float64{}, nil
	}

	var raw []any
	switch s := v.(type) {
	case []any:
		raw = s
	case []core.TagWeight:
		return ExtractTagProfile(s), nil
	default:
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "profile: tag list is not a sequence")
	}

	out := make(map[string]float64, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		tag, ok := conv.ToString(m["tag"])
		if !ok {
			continue
		}
		weight, ok := conv.ToFloat64(m["weight"])
		if !ok || !validTagWeight(tag, weight) {
			continue
		}
		out[tag] = weight
	}
	return out, nil
}

func validTagWeight(tag string, weight float64) bool {
	if tag == "" {
		return false
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return false
	}
	return true
}

// round3 将权重四舍五入到 3 位小数。
// 稳定性/展示措施，保证测试夹具可复现；对排序正确性不承重。
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// sortedTagWeights 将聚合映射落成按权重降序的标签列表，权重统一 round3。
// 同权重按 tag 字典序排，保证聚合产物完全确定。
func sortedTagWeights(acc map[string]float64) []core.TagWeight {
	out := make([]core.TagWeight, 0, len(acc))
	for tag, w := range acc {
		out = append(out, core.TagWeight{Tag: tag, Weight: round3(w)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
