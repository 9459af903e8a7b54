// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"poem-tab-api/internal/domain/entity"
)

// LanguagePreferenceProvider 只读语言偏好能力
// 取诗服务通过它在每次请求时重新读取偏好，而不是持有全局状态
type LanguagePreferenceProvider interface {
	// GetLanguage 读取语言偏好，未设置时返回 chinese
	GetLanguage(ctx context.Context, installID string) (entity.Language, error)
}

// PreferenceStore 持久化键值存储
// 每个键独立一致，允许 last-write-wins
type PreferenceStore interface {
	LanguagePreferenceProvider

	// SetLanguage 写入语言偏好，仅由用户显式操作触发
	SetLanguage(ctx context.Context, installID string, lang entity.Language) error

	// GetCurrentIndex 读取当前索引，未设置时返回 0
	GetCurrentIndex(ctx context.Context, installID string) (int, error)

	// SetCurrentIndex 写入当前索引，index 必须 >= 0
	SetCurrentIndex(ctx context.Context, installID string, index int) error
}
