package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/interfaces/http/dto"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/logger"
)

// MessageHandler 消息中继处理器
// 浏览器端以 {type, payload} 形式下发指令，按 type 分发到取诗服务
type MessageHandler struct {
	svc *poem.Service
}

// NewMessageHandler 创建消息中继处理器
func NewMessageHandler(svc *poem.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Relay 消息分发入口
// @Summary 消息中继
// @Description 分发 GET_RANDOM_POEM / GET_POEM_BY_CATEGORY / GET_POEM / GET_CURRENT_INDEX / SET_CURRENT_INDEX / GET_LANGUAGE / SET_LANGUAGE
// @Tags Message
// @Accept json
// @Produce json
// @Param X-Install-ID header string false "安装标识"
// @Param request body dto.MessageRequest true "消息"
// @Success 200 {object} dto.Response[any]
// @Failure 400 {object} dto.Response[any]
// @Router /v1/message [post]
func (h *MessageHandler) Relay(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Fail(c, errors.New(errors.CodeInvalidParam, "invalid message body").WithError(err))
		return
	}

	install := installID(c)

	switch req.Type {
	case dto.MessageGetRandomPoem:
		record, err := h.svc.GetRandomPoem(ctx, install)
		if err != nil {
			logger.Error(ctx, "message relay failed", err, "type", req.Type)
			dto.Fail(c, err)
			return
		}
		dto.Success(c, dto.FromPoemRecord(record))

	case dto.MessageGetPoemByCategory:
		var payload dto.CategoryPayload
		if err := bindPayload(req.Payload, &payload); err != nil {
			dto.Fail(c, err)
			return
		}
		record, err := h.svc.GetPoemByCategory(ctx, install, payload.Category)
		if err != nil {
			logger.Error(ctx, "message relay failed", err, "type", req.Type, "category", payload.Category)
			dto.Fail(c, err)
			return
		}
		dto.Success(c, dto.FromPoemRecord(record))

	case dto.MessageGetPoem:
		var payload dto.IndexPayload
		if err := bindPayload(req.Payload, &payload); err != nil {
			dto.Fail(c, err)
			return
		}
		if payload.Index == nil {
			dto.Fail(c, errors.New(errors.CodeInvalidParam, "payload.index is required"))
			return
		}
		record, err := h.svc.GetPoem(ctx, install, *payload.Index)
		if err != nil {
			if !errors.IsCode(err, errors.CodeInvalidIndex) {
				logger.Error(ctx, "message relay failed", err, "type", req.Type, "index", *payload.Index)
			}
			dto.Fail(c, err)
			return
		}
		dto.Success(c, dto.FromPoemRecord(record))

	case dto.MessageGetCurrentIndex:
		index, err := h.svc.GetCurrentIndex(ctx, install)
		if err != nil {
			logger.Error(ctx, "message relay failed", err, "type", req.Type)
			dto.Fail(c, err)
			return
		}
		dto.Success(c, &dto.IndexStateResponse{Index: index})

	case dto.MessageSetCurrentIndex:
		var payload dto.IndexPayload
		if err := bindPayload(req.Payload, &payload); err != nil {
			dto.Fail(c, err)
			return
		}
		if payload.Index == nil {
			dto.Fail(c, errors.New(errors.CodeInvalidParam, "payload.index is required"))
			return
		}
		if err := h.svc.SetCurrentIndex(ctx, install, *payload.Index); err != nil {
			dto.Fail(c, err)
			return
		}
		dto.Success(c, &dto.IndexStateResponse{Index: *payload.Index})

	case dto.MessageGetLanguage:
		lang, err := h.svc.GetLanguage(ctx, install)
		if err != nil {
			logger.Error(ctx, "message relay failed", err, "type", req.Type)
			dto.Fail(c, err)
			return
		}
		dto.Success(c, &dto.LanguageStateResponse{Language: string(lang)})

	case dto.MessageSetLanguage:
		var payload dto.LanguagePayload
		if err := bindPayload(req.Payload, &payload); err != nil {
			dto.Fail(c, err)
			return
		}
		lang, ok := entity.ParseLanguage(payload.Language)
		if !ok {
			dto.Fail(c, errors.New(errors.CodeInvalidParam, "payload.language must be chinese or english"))
			return
		}
		if err := h.svc.SetLanguage(ctx, install, lang); err != nil {
			logger.Error(ctx, "message relay failed", err, "type", req.Type)
			dto.Fail(c, err)
			return
		}
		dto.Success(c, &dto.LanguageStateResponse{Language: string(lang)})

	default:
		dto.Fail(c, errors.New(errors.CodeInvalidParam,
			fmt.Sprintf("unknown message type: %s", req.Type)))
	}
}

// bindPayload 解码消息负载
func bindPayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.New(errors.CodeInvalidParam, "invalid message payload").WithError(err)
	}
	return nil
}
