package conv

import "testing"

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{"float64", 3.14, 3.14, true},
		{"float32", float32(2), 2, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"string 不支持", "3.14", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("期望 (%v, %v)，实际 (%v, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	if got, ok := ToInt(float64(5)); !ok || got != 5 {
		t.Errorf("float64 应可转 int: (%v, %v)", got, ok)
	}
	if _, ok := ToInt("5"); ok {
		t.Error("字符串不支持")
	}
}

func TestToString(t *testing.T) {
	if got, ok := ToString("abc"); !ok || got != "abc" {
		t.Errorf("期望 abc: (%v, %v)", got, ok)
	}
	if _, ok := ToString(5); ok {
		t.Error("非字符串应失败")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"name": "feed", "weight": 0.6, "dedup": true}

	if got := ConfigGet[string](cfg, "name", ""); got != "feed" {
		t.Errorf("期望 feed，实际 %v", got)
	}
	if got := ConfigGet[float64](cfg, "weight", 0); got != 0.6 {
		t.Errorf("期望 0.6，实际 %v", got)
	}
	if got := ConfigGet[bool](cfg, "dedup", false); !got {
		t.Error("期望 true")
	}
	// 类型不符或缺失时取默认值
	if got := ConfigGet[int](cfg, "weight", 42); got != 42 {
		t.Errorf("类型不符应取默认值，实际 %v", got)
	}
	if got := ConfigGet[string](nil, "name", "def"); got != "def" {
		t.Errorf("nil 配置应取默认值，实际 %v", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	// yaml 解析出 int，json 解析出 float64，都要兼容
	cfg := map[string]any{"from_yaml": 5, "from_json": float64(7)}

	if got := ConfigGetInt64(cfg, "from_yaml", 0); got != 5 {
		t.Errorf("期望 5，实际 %v", got)
	}
	if got := ConfigGetInt64(cfg, "from_json", 0); got != 7 {
		t.Errorf("期望 7，实际 %v", got)
	}
	if got := ConfigGetInt64(cfg, "missing", 3); got != 3 {
		t.Errorf("缺失应取默认值，实际 %v", got)
	}
}
