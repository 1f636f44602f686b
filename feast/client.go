// Package feast 提供 Feast Feature Store 的客户端，用于从在线特征存储
// 读取用户兴趣特征（冷启动画像兜底等场景）。
//
// Feast 是一个开源的 Feature Store：
//   - 在线特征存储（Online Store）：实时读取，推荐链路使用
//   - 离线特征存储（Offline Store）：训练数据，本包不涉及
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征读取的领域接口。
// 领域层依赖此接口（profile.FeastSource），基础设施层由 GrpcClient 实现。
type Client interface {
	// GetOnlineFeatures 获取在线特征。
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["user_interest:beach", "user_interest:hiking"]
	//   - EntityRows: 实体行，例如 [{"user_id": "u1"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，格式为 "feature_view:feature"
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u1"}, {"user_id": "u2"}]
	EntityRows []map[string]any

	// Project 项目名称（可选，为空时使用客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// ClientOption 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration
	Auth     *AuthConfig
}

// AuthConfig 认证配置（static token）
type AuthConfig struct {
	Type  string // 目前仅支持 "static"
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
