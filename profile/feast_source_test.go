package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feast"
)

type fakeFeastClient struct {
	resp *feast.GetOnlineFeaturesResponse
	err  error
	req  *feast.GetOnlineFeaturesRequest
}

func (f *fakeFeastClient) GetOnlineFeatures(_ context.Context, req *feast.GetOnlineFeaturesRequest) (*feast.GetOnlineFeaturesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeFeastClient) Close() error { return nil }

func TestFeastSource_GetPreferredTags(t *testing.T) {
	client := &fakeFeastClient{
		resp: &feast.GetOnlineFeaturesResponse{
			FeatureVectors: []feast.FeatureVector{{
				Values: map[string]any{
					"user_interest:beach":  0.8,
					"user_interest:hiking": int64(1),
					"user_interest:museum": 0.0,   // 非正值跳过
					"user_interest:broken": "n/a", // 不可转数值跳过
				},
			}},
		},
	}
	src := &FeastSource{
		Client:   client,
		Features: []string{"user_interest:beach", "user_interest:hiking"},
	}

	prefs, err := src.GetPreferredTags(context.Background(), "alice")
	if err != nil {
		t.Fatalf("读取偏好失败: %v", err)
	}
	if len(prefs) != 2 {
		t.Fatalf("期望 2 个偏好标签，实际 %v", prefs)
	}
	// 标签名取 feature view 之后的部分
	if prefs["beach"] != 0.8 || prefs["hiking"] != 1 {
		t.Errorf("偏好解析不符: %v", prefs)
	}

	// 实体行默认使用 user_id
	if client.req == nil || len(client.req.EntityRows) != 1 {
		t.Fatal("应发起单实体行请求")
	}
	if client.req.EntityRows[0]["user_id"] != "alice" {
		t.Errorf("实体行不符: %v", client.req.EntityRows[0])
	}
}

func TestFeastSource_Unavailable(t *testing.T) {
	src := &FeastSource{
		Client:   &fakeFeastClient{err: fmt.Errorf("connection refused")},
		Features: []string{"user_interest:beach"},
	}

	_, err := src.GetPreferredTags(context.Background(), "alice")
	if !core.IsUnavailable(err) {
		t.Errorf("特征平台故障期望 UNAVAILABLE，实际 %v", err)
	}
}

func TestFeastSource_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		src    *FeastSource
		userID string
	}{
		{"无客户端", &FeastSource{Features: []string{"f:x"}}, "alice"},
		{"无特征列表", &FeastSource{Client: &fakeFeastClient{}}, "alice"},
		{"空用户", &FeastSource{Client: &fakeFeastClient{}, Features: []string{"f:x"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs, err := tt.src.GetPreferredTags(context.Background(), tt.userID)
			if err != nil || len(prefs) != 0 {
				t.Errorf("退化输入期望空偏好无错误: %v, %v", prefs, err)
			}
		})
	}
}
