// Package wire 提供依赖装配
package wire

import (
	"context"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/config"
	"poem-tab-api/internal/domain/repository"
	"poem-tab-api/internal/infrastructure/persistence/postgres"
	"poem-tab-api/internal/infrastructure/persistence/redis"
	"poem-tab-api/internal/infrastructure/upstream/jinrishici"
	"poem-tab-api/internal/infrastructure/upstream/poetrydb"
	"poem-tab-api/internal/interfaces/http/handler"
	"poem-tab-api/internal/interfaces/http/router"
	"poem-tab-api/pkg/logger"
)

// App 装配完成的应用
type App struct {
	Router      *router.Router
	RedisClient *redis.Client
	PgClient    *postgres.Client
}

// InitializeApp 初始化整个应用（带路由器）
// Postgres 可选：历史功能关闭或连接失败时服务以 Redis-only 模式运行
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Redis：偏好存储所在，必需
	redisClient, err := redis.NewClient(&cfg.Store.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, func() { _ = redisClient.Close() })

	prefs := redis.NewPreferenceRepository(redisClient)
	cache := redis.NewCache(redisClient, cfg.Store.AssetTTL)
	limiter := redis.NewRateLimiter(redisClient)

	// Postgres：取诗历史，可选
	var pgClient *postgres.Client
	var historyRepo repository.FetchHistoryRepository
	var historySvc *poem.HistoryService
	if cfg.History.Enabled {
		pgClient, err = postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			logger.Warn(ctx, "postgres not available, fetch history disabled", "error", err.Error())
			pgClient = nil
		} else {
			cleanups = append(cleanups, func() { _ = pgClient.Close() })
			if err := pgClient.Migrate(ctx); err != nil {
				cleanup()
				return nil, nil, err
			}
			repo := postgres.NewHistoryRepository(pgClient)
			historyRepo = repo
			historySvc = poem.NewHistoryService(repo, cache, redis.HistoryCacheKey, cfg.History.CacheTTL, cfg.History.RecentLimit)
		}
	}

	// 上游客户端
	chinese := jinrishici.NewClient(&cfg.Upstream.Jinrishici)
	english := poetrydb.NewClient(&cfg.Upstream.PoetryDB)

	// 应用服务
	poemSvc := poem.NewService(prefs, chinese, english, historyRepo)

	// HTTP 层
	handlers := router.Handlers{
		Poem:    handler.NewPoemHandler(poemSvc),
		State:   handler.NewStateHandler(poemSvc),
		Message: handler.NewMessageHandler(poemSvc),
		History: handler.NewHistoryHandler(historySvc),
		Health:  handler.NewHealthHandler(redisClient, pgClient),
	}
	r := router.New(cfg, handlers, limiter)

	return &App{
		Router:      r,
		RedisClient: redisClient,
		PgClient:    pgClient,
	}, cleanup, nil
}
