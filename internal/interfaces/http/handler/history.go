package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/interfaces/http/dto"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/logger"
)

// HistoryHandler 取诗历史处理器
type HistoryHandler struct {
	svc *poem.HistoryService
}

// NewHistoryHandler 创建取诗历史处理器
func NewHistoryHandler(svc *poem.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// Recent 最近取诗记录
// @Summary 最近取诗记录
// @Description 按取诗时间倒序返回最近记录，历史功能未启用时返回 404
// @Tags History
// @Produce json
// @Param limit query int false "返回条数上限"
// @Success 200 {object} dto.Response[dto.FetchHistoryResponse]
// @Failure 404 {object} dto.Response[any]
// @Router /v1/history/recent [get]
func (h *HistoryHandler) Recent(c *gin.Context) {
	ctx := c.Request.Context()

	if h == nil || h.svc == nil {
		dto.Fail(c, errors.New(errors.CodeNotFound, "fetch history is disabled"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			dto.Fail(c, errors.New(errors.CodeInvalidParam, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := h.svc.ListRecent(ctx, limit)
	if err != nil {
		logger.Error(ctx, "failed to list fetch history", err)
		dto.Fail(c, err)
		return
	}

	resp := &dto.FetchHistoryResponse{Records: make([]*dto.FetchRecordResponse, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, dto.FromFetchRecord(rec))
	}
	dto.Success(c, resp)
}
