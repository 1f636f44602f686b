package store

import (
	"context"
	"testing"

	"github.com/rushteam/tripkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	got, err := ms.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Errorf("期望 v1，实际 %s (err=%v)", got, err)
	}

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("不存在的 key 期望 NOT_FOUND，实际 %v", err)
	}

	if err := ms.Delete(ctx, "k1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ms.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("删除后期望 NOT_FOUND，实际 %v", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	err := ms.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := ms.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("批量读取结果不符: %v", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "rank", 1.0, "low")
	ms.ZAdd(ctx, "rank", 3.0, "high")
	ms.ZAdd(ctx, "rank", 2.0, "mid")

	members, err := ms.ZRange(ctx, "rank", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"high", "mid", "low"}
	if len(members) != 3 {
		t.Fatalf("期望 3 个成员，实际 %d", len(members))
	}
	for i, m := range expected {
		if members[i] != m {
			t.Errorf("位置 %d 期望 %s，实际 %s", i, m, members[i])
		}
	}

	// 范围截断
	top, err := ms.ZRange(ctx, "rank", 0, 1)
	if err != nil || len(top) != 2 || top[0] != "high" {
		t.Errorf("前两名期望 [high mid]，实际 %v (err=%v)", top, err)
	}

	score, err := ms.ZScore(ctx, "rank", "mid")
	if err != nil || score != 2.0 {
		t.Errorf("mid 分数期望 2.0，实际 %v (err=%v)", score, err)
	}
	if _, err := ms.ZScore(ctx, "rank", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("不存在的成员期望 NOT_FOUND，实际 %v", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.HSet(ctx, "page:p1", "name", []byte("Bali"))
	ms.HSet(ctx, "page:p1", "cover", []byte("bali.jpg"))

	got, err := ms.HGet(ctx, "page:p1", "name")
	if err != nil || string(got) != "Bali" {
		t.Errorf("期望 Bali，实际 %s (err=%v)", got, err)
	}
	if _, err := ms.HGet(ctx, "page:p1", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("不存在的字段期望 NOT_FOUND，实际 %v", err)
	}

	all, err := ms.HGetAll(ctx, "page:p1")
	if err != nil || len(all) != 2 {
		t.Errorf("期望 2 个字段，实际 %v (err=%v)", all, err)
	}

	// Delete 连同 Hash 一并清理
	ms.Delete(ctx, "page:p1")
	if all, _ := ms.HGetAll(ctx, "page:p1"); len(all) != 0 {
		t.Errorf("删除后 Hash 应为空: %v", all)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	// ttl 以秒为单位；未过期期间可读
	if err := ms.Set(ctx, "k", []byte("v"), 60); err != nil {
		t.Fatal(err)
	}
	if _, err := ms.Get(ctx, "k"); err != nil {
		t.Errorf("未过期的 key 应可读: %v", err)
	}
}
