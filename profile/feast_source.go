package profile

import (
	"context"
	"strings"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/feast"
	"github.com/rushteam/tripkit/pkg/conv"
)

// FeastSource 是基于 Feast 在线特征存储的偏好来源。
// 零行为用户没有可聚合的历史，此时从特征平台读取离线算好的兴趣标签
// 作为冷启动画像（UserBuilder.Prefs）。
//
// 特征命名约定："{FeatureView}:{tag}"，例如 "user_interest:beach"。
// 特征值须可转为非负 float64，否则该特征被跳过。
type FeastSource struct {
	Client feast.Client

	// Features 要读取的特征全名列表，例如 ["user_interest:beach", "user_interest:hiking"]
	Features []string

	// EntityKey 实体 key，默认 "user_id"
	EntityKey string

	// Project Feast 项目名（可选，为空用客户端默认值）
	Project string
}

func (s *FeastSource) GetPreferredTags(ctx context.Context, userID string) (map[string]float64, error) {
	if s.Client == nil || len(s.Features) == 0 || userID == "" {
		return map[string]float64{}, nil
	}

	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: []map[string]any{{entityKey: userID}},
		Project:    s.Project,
	})
	if err != nil {
		// 特征平台不可用只影响冷启动兜底，调用方按空偏好继续
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeUnavailable, "profile: feast preference lookup failed")
	}
	if len(resp.FeatureVectors) == 0 {
		return map[string]float64{}, nil
	}

	prefs := make(map[string]float64)
	for name, val := range resp.FeatureVectors[0].Values {
		w, ok := conv.ToFloat64(val)
		if !ok || w <= 0 {
			continue
		}
		prefs[featureTag(name)] = w
	}
	return prefs, nil
}

// featureTag 取特征全名中 feature view 之后的部分作为标签名。
func featureTag(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 && i+1 < len(name) {
		return name[i+1:]
	}
	return name
}

var _ PreferenceSource = (*FeastSource)(nil)
