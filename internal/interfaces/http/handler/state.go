package handler

import (
	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/interfaces/http/dto"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/logger"
)

// StateHandler 偏好状态处理器
type StateHandler struct {
	svc *poem.Service
}

// NewStateHandler 创建偏好状态处理器
func NewStateHandler(svc *poem.Service) *StateHandler {
	return &StateHandler{svc: svc}
}

// GetIndex 读取当前样本索引
// @Summary 读取当前样本索引
// @Tags State
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Success 200 {object} dto.Response[dto.IndexStateResponse]
// @Router /v1/state/index [get]
func (h *StateHandler) GetIndex(c *gin.Context) {
	ctx := c.Request.Context()

	index, err := h.svc.GetCurrentIndex(ctx, installID(c))
	if err != nil {
		logger.Error(ctx, "failed to read current index", err)
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.IndexStateResponse{Index: index})
}

// SetIndex 写入当前样本索引
// @Summary 写入当前样本索引
// @Description 负数索引拒绝写入
// @Tags State
// @Accept json
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Param request body dto.SetIndexRequest true "索引"
// @Success 200 {object} dto.Response[dto.IndexStateResponse]
// @Failure 400 {object} dto.Response[any]
// @Router /v1/state/index [put]
func (h *StateHandler) SetIndex(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, errors.New(errors.CodeInvalidParam, "invalid request body").WithError(err))
		return
	}

	if err := h.svc.SetCurrentIndex(ctx, installID(c), *req.Index); err != nil {
		if !errors.IsCode(err, errors.CodeInvalidIndex) {
			logger.Error(ctx, "failed to set current index", err, "index", *req.Index)
		}
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.IndexStateResponse{Index: *req.Index})
}

// GetLanguage 读取语言偏好
// @Summary 读取语言偏好
// @Tags State
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Success 200 {object} dto.Response[dto.LanguageStateResponse]
// @Router /v1/state/language [get]
func (h *StateHandler) GetLanguage(c *gin.Context) {
	ctx := c.Request.Context()

	lang, err := h.svc.GetLanguage(ctx, installID(c))
	if err != nil {
		logger.Error(ctx, "failed to read language preference", err)
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.LanguageStateResponse{Language: string(lang)})
}

// SetLanguage 写入语言偏好
// @Summary 写入语言偏好
// @Description 仅接受 chinese / english
// @Tags State
// @Accept json
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Param request body dto.SetLanguageRequest true "语言"
// @Success 200 {object} dto.Response[dto.LanguageStateResponse]
// @Failure 400 {object} dto.Response[any]
// @Router /v1/state/language [put]
func (h *StateHandler) SetLanguage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, errors.New(errors.CodeInvalidParam, "invalid request body").WithError(err))
		return
	}

	lang, ok := entity.ParseLanguage(req.Language)
	if !ok {
		dto.Fail(c, errors.New(errors.CodeInvalidParam, "language must be chinese or english"))
		return
	}

	if err := h.svc.SetLanguage(ctx, installID(c), lang); err != nil {
		logger.Error(ctx, "failed to set language preference", err, "language", req.Language)
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.LanguageStateResponse{Language: string(lang)})
}
