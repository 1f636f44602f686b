// Package store 提供 core.Store / core.KeyValueStore 接口的基础设施实现。
//
// 接口定义在 core 包，此包只放实现：
//
//	var s core.Store = store.NewMemoryStore()
//	kv, _ := store.NewRedisStore("localhost:6379", 0)
//
// 典型用法是作为 profile.StoreAdapter 的底层后端，
// 承载行为流水、内容标签与页面文档。
package store
