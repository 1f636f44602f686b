package core

import "context"

// Interaction 是一条用户对内容的行为记录（浏览、点赞等）。
// 由外部数据接入层产生，本引擎只读，不修改、不删除。
type Interaction struct {
	UserID    string `json:"user_id"`
	ContentID string `json:"content_id"`
	PageID    string `json:"page_id"` // 内容所属页面（POI）
	Action    string `json:"action"`  // View / Like / ...
}

// ContentTags 是一条内容的标签集：文本标签按出现计数，图像标签携带上游打标器给出的置信权重。
type ContentTags struct {
	TextTags  []string    `json:"text_tags"`
	ImageTags []TagWeight `json:"image_tags"`
}

// Destination 是页面关联的目的地元数据：人工维护的分类标签 + 适宜月份列表。
type Destination struct {
	Tags   []string `json:"tags"`
	Months []int    `json:"months"` // 1-12
}

// PageMeta 是页面的展示元信息，编排层用它 enrich 推荐结果。
type PageMeta struct {
	Name  string `json:"name"`
	Cover string `json:"cover"`
}

// InteractionStore 是行为数据的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（profile.StoreAdapter 等）实现
//   - 遵循依赖倒置原则，避免循环依赖
//
// 单条记录缺失/解析失败时实现方应返回空结果而非报错：
// 局部数据缺口只意味着“该条贡献为零”，不允许让整次推荐失败。
type InteractionStore interface {
	// GetUserInteractions 获取一个用户的全部行为记录
	GetUserInteractions(ctx context.Context, userID string) ([]Interaction, error)

	// GetAllUsers 获取所有用户 ID 列表（用户协同过滤的候选邻居池）
	GetAllUsers(ctx context.Context) ([]string, error)
}

// ContentTagStore 是内容标签的领域接口（上游视觉/文本打标的产物，本引擎只消费）。
type ContentTagStore interface {
	// GetContentTags 获取一条内容的标签集；内容不存在时返回 NOT_FOUND
	GetContentTags(ctx context.Context, contentID string) (*ContentTags, error)
}

// PageStore 是页面数据的领域接口。
type PageStore interface {
	// GetAllPages 获取所有页面 ID 列表（内容召回的候选池）
	GetAllPages(ctx context.Context) ([]string, error)

	// GetPageContents 获取页面挂载的内容 ID 列表
	GetPageContents(ctx context.Context, pageID string) ([]string, error)

	// GetPageDestination 获取页面关联的目的地元数据；无关联时返回 NOT_FOUND
	GetPageDestination(ctx context.Context, pageID string) (*Destination, error)

	// GetPageMeta 获取页面展示元信息；页面不存在时返回 NOT_FOUND
	GetPageMeta(ctx context.Context, pageID string) (*PageMeta, error)
}
