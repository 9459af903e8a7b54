package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/infrastructure/persistence/postgres"
	"poem-tab-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	redis *redis.Client
	pg    *postgres.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(redisClient *redis.Client, pgClient *postgres.Client) *HealthHandler {
	return &HealthHandler{
		redis: redisClient,
		pg:    pgClient,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"redis":    {Status: "unknown"},
		"postgres": {Status: "disabled"},
	}

	ready := true

	// Redis（必需，偏好存储所在）
	if h == nil || h.redis == nil {
		checks["redis"].Status = "missing"
		checks["redis"].Error = "redis client not configured"
		ready = false
	} else {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	// Postgres（可选，历史记录不可用时降级不影响就绪态）
	if h != nil && h.pg != nil {
		checks["postgres"] = &readinessCheck{Status: "unknown"}
		start := time.Now()
		err := h.pg.HealthCheck(ctx)
		checks["postgres"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["postgres"].Status = "degraded"
			checks["postgres"].Error = err.Error()
		} else {
			checks["postgres"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Description 检查服务是否存活
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
