package profile

import (
	"math"
	"testing"

	"github.com/rushteam/tripkit/core"
)

func TestActionWeights_WeightOf(t *testing.T) {
	tests := []struct {
		name     string
		weights  ActionWeights
		action   string
		expected float64
	}{
		{"默认策略 Like 三倍", DefaultActionWeights(), "Like", 3},
		{"未登记行为按 1", DefaultActionWeights(), "View", 1},
		{"nil 策略表按 1", nil, "Like", 1},
		{"自定义策略", ActionWeights{"Share": 5}, "Share", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.weights.WeightOf(tt.action); got != tt.expected {
				t.Errorf("期望 %v，实际 %v", tt.expected, got)
			}
		})
	}
}

func TestExtractTagProfile(t *testing.T) {
	tags := []core.TagWeight{
		{Tag: "beach", Weight: 0.9},
		{Tag: "", Weight: 1},                         // 空 tag 跳过
		{Tag: "bad-nan", Weight: math.NaN()},         // NaN 跳过
		{Tag: "bad-inf", Weight: math.Inf(1)},        // Inf 跳过
		{Tag: "bad-neg", Weight: -1},                 // 负数跳过
		{Tag: "sunset", Weight: 0},                   // 0 是合法权重
		{Tag: "beach", Weight: 0.5},                  // 重复 tag last-wins
	}

	got := ExtractTagProfile(tags)
	if len(got) != 2 {
		t.Fatalf("期望 2 个合法标签，实际 %d 个: %v", len(got), got)
	}
	if got["beach"] != 0.5 {
		t.Errorf("重复 tag 应 last-wins，期望 0.5，实际 %v", got["beach"])
	}
	if w, ok := got["sunset"]; !ok || w != 0 {
		t.Errorf("权重 0 应保留，实际 %v (存在=%v)", w, ok)
	}
}

func TestExtractTagProfileAny(t *testing.T) {
	t.Run("接受 []any 形态", func(t *testing.T) {
		raw := []any{
			map[string]any{"tag": "beach", "weight": 0.9},
			map[string]any{"tag": "sunset", "weight": int64(1)}, // 整型权重也接受
			map[string]any{"tag": "", "weight": 1.0},            // 元素级畸形跳过
			map[string]any{"tag": "pool", "weight": "0.5"},      // 字符串权重不接受，跳过
			"not-a-map",                                         // 跳过
		}
		got, err := ExtractTagProfileAny(raw)
		if err != nil {
			t.Fatalf("不应报错: %v", err)
		}
		if len(got) != 2 || got["beach"] != 0.9 || got["sunset"] != 1 {
			t.Errorf("解析结果不符: %v", got)
		}
	})

	t.Run("nil 输入得到空映射", func(t *testing.T) {
		got, err := ExtractTagProfileAny(nil)
		if err != nil || len(got) != 0 {
			t.Errorf("期望空映射无错误，实际 %v, %v", got, err)
		}
	})

	t.Run("非序列输入返回 INVALID_INPUT", func(t *testing.T) {
		_, err := ExtractTagProfileAny("not a sequence")
		if err == nil {
			t.Fatal("期望错误")
		}
		if !core.IsInvalidInput(err) {
			t.Errorf("期望 INVALID_INPUT，实际 %v", err)
		}
	})
}

func TestSortedTagWeights(t *testing.T) {
	got := sortedTagWeights(map[string]float64{
		"beach":  3.00049, // round3 → 3.0
		"hiking": 1,
		"museum": 1, // 同权重按字典序
		"sunset": 2,
	})

	expected := []core.TagWeight{
		{Tag: "beach", Weight: 3},
		{Tag: "sunset", Weight: 2},
		{Tag: "hiking", Weight: 1},
		{Tag: "museum", Weight: 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("长度期望 %d，实际 %d", len(expected), len(got))
	}
	for i, tw := range expected {
		if got[i] != tw {
			t.Errorf("位置 %d 期望 %+v，实际 %+v", i, tw, got[i])
		}
	}
}
