package poem

import (
	"context"
	"encoding/json"
	"time"

	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/domain/repository"
)

// HistoryCache 历史列表的读穿缓存能力
type HistoryCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}

// HistoryService 取诗历史查询服务
// 列表经缓存读出，写入侧保持 best-effort，不做缓存失效
// （列表容忍 cacheTTL 内的陈旧数据）
type HistoryService struct {
	repo     repository.FetchHistoryRepository
	cache    HistoryCache
	cacheKey string
	cacheTTL time.Duration
	limit    int
}

// NewHistoryService 创建历史查询服务
func NewHistoryService(repo repository.FetchHistoryRepository, cache HistoryCache, cacheKey string, cacheTTL time.Duration, limit int) *HistoryService {
	if limit <= 0 {
		limit = 20
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &HistoryService{
		repo:     repo,
		cache:    cache,
		cacheKey: cacheKey,
		cacheTTL: cacheTTL,
		limit:    limit,
	}
}

// ListRecent 列出最近下发的诗词记录
func (h *HistoryService) ListRecent(ctx context.Context, limit int) ([]*entity.FetchRecord, error) {
	if limit <= 0 || limit > h.limit {
		limit = h.limit
	}

	if h.cache == nil {
		return h.repo.ListRecent(ctx, limit)
	}

	raw, err := h.cache.GetOrLoadSafe(ctx, h.cacheKey, h.cacheTTL, func() (interface{}, error) {
		return h.repo.ListRecent(ctx, h.limit)
	})
	if err != nil {
		return nil, err
	}

	var records []*entity.FetchRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
