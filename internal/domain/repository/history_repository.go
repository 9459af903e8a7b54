package repository

import (
	"context"

	"poem-tab-api/internal/domain/entity"
)

// FetchHistoryRepository 取诗历史访问接口
type FetchHistoryRepository interface {
	// Record 记录一次成功下发
	Record(ctx context.Context, rec *entity.FetchRecord) error

	// ListRecent 按时间倒序列出最近的记录
	ListRecent(ctx context.Context, limit int) ([]*entity.FetchRecord, error)
}
