// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// Enabled 是否启用限流
	Enabled bool
	// RequestsPerSecond 每秒请求数
	RequestsPerSecond int
	// KeyPrefix Redis Key 前缀
	KeyPrefix string
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 限流中间件
// 按客户端 IP 与路径限流，限流器故障时放行
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 100
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "poemtab:ratelimit"
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + ":" + c.ClientIP() + ":" + c.Request.URL.Path

		allowed, err := limiter.Allow(c.Request.Context(), key, cfg.RequestsPerSecond, time.Second)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "1006",
					"message": "rate limit exceeded",
				},
				"trace_id": c.GetString("trace_id"),
			})
			return
		}

		c.Next()
	}
}
