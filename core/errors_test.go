package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		check   func(error) bool
		matches bool
	}{
		{"NOT_FOUND 命中", ErrStoreNotFound, IsNotFound, true},
		{"NOT_FOUND 不命中普通错误", fmt.Errorf("boom"), IsNotFound, false},
		{"EMPTY_PROFILE 命中", ErrEmptyProfile, IsEmptyProfile, true},
		{"INVALID_INPUT 命中", NewDomainError(ModuleHybrid, ErrorCodeInvalidInput, "bad month"), IsInvalidInput, true},
		{"UNAVAILABLE 命中", NewDomainError(ModuleProfile, ErrorCodeUnavailable, "feast down"), IsUnavailable, true},
		{"nil 不命中", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.matches {
				t.Errorf("期望 %v，实际 %v", tt.matches, got)
			}
		})
	}
}

func TestStoreErrorScoping(t *testing.T) {
	// store 专用检查只认 store 模块的错误
	profileNotFound := NewDomainError(ModuleProfile, ErrorCodeNotFound, "profile missing")
	if IsStoreNotFound(profileNotFound) {
		t.Error("profile 模块的 NOT_FOUND 不应被判为 store 错误")
	}
	if !IsStoreNotFound(ErrStoreNotFound) {
		t.Error("ErrStoreNotFound 应命中")
	}
	if !IsStoreNotSupported(ErrStoreNotSupported) {
		t.Error("ErrStoreNotSupported 应命中")
	}
}

func TestErrEmptyProfileSentinel(t *testing.T) {
	// 哨兵错误可用 errors.Is 直接比较
	if !errors.Is(ErrEmptyProfile, ErrEmptyProfile) {
		t.Error("哨兵错误应与自身相等")
	}
	if ErrEmptyProfile.Error() == "" {
		t.Error("错误消息不应为空")
	}
}
