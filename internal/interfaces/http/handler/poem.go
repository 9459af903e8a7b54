package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/interfaces/http/dto"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/logger"
)

// PoemHandler 诗词处理器
type PoemHandler struct {
	svc *poem.Service
}

// NewPoemHandler 创建诗词处理器
func NewPoemHandler(svc *poem.Service) *PoemHandler {
	return &PoemHandler{svc: svc}
}

// Random 获取随机诗词
// @Summary 获取随机诗词
// @Description 按安装的语言偏好返回一首随机诗词
// @Tags Poems
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Success 200 {object} dto.Response[dto.PoemResponse]
// @Failure 502 {object} dto.Response[any]
// @Router /v1/poems/random [get]
func (h *PoemHandler) Random(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.svc.GetRandomPoem(ctx, installID(c))
	if err != nil {
		logger.Error(ctx, "failed to fetch random poem", err)
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.FromPoemRecord(record))
}

// ByCategory 按分类获取诗词
// @Summary 按分类获取诗词
// @Description 中文分类原样转发上游；英文支持 author/{name} 与 linecount/{n}
// @Tags Poems
// @Produce json
// @Param category path string true "分类"
// @Param X-Install-ID header string false "安装标识"
// @Success 200 {object} dto.Response[dto.PoemResponse]
// @Failure 404 {object} dto.Response[any]
// @Failure 502 {object} dto.Response[any]
// @Router /v1/poems/category/{category} [get]
func (h *PoemHandler) ByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimPrefix(c.Param("category"), "/")

	record, err := h.svc.GetPoemByCategory(ctx, installID(c), category)
	if err != nil {
		logger.Error(ctx, "failed to fetch poem by category", err, "category", category)
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.FromPoemRecord(record))
}

// ByIndex 按本地样本索引获取诗词
// @Summary 按样本索引获取诗词
// @Description 索引 -1 退化为随机取诗，越界返回 400
// @Tags Poems
// @Produce json
// @Param index path int true "样本索引"
// @Param X-Install-ID header string false "安装标识"
// @Success 200 {object} dto.Response[dto.PoemResponse]
// @Failure 400 {object} dto.Response[any]
// @Router /v1/poems/index/{index} [get]
func (h *PoemHandler) ByIndex(c *gin.Context) {
	ctx := c.Request.Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		dto.Fail(c, errors.New(errors.CodeInvalidParam, "index must be an integer"))
		return
	}

	record, err := h.svc.GetPoem(ctx, installID(c), index)
	if err != nil {
		if !errors.IsCode(err, errors.CodeInvalidIndex) {
			logger.Error(ctx, "failed to fetch poem by index", err, "index", index)
		}
		dto.Fail(c, err)
		return
	}
	dto.Success(c, dto.FromPoemRecord(record))
}
