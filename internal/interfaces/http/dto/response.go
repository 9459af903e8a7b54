// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"poem-tab-api/pkg/errors"
)

// Response 统一响应封套
// success 为 false 时 data 缺省，error 携带错误信息
type Response[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Success: true,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Fail 按应用错误返回失败响应
// 非 AppError 统一映射为 500 内部错误
func Fail(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	c.JSON(appErr.HTTPStatus, Response[any]{
		Success: false,
		Error: &ErrorDetail{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		},
		TraceID: c.GetString("trace_id"),
	})
}

// FailWith 按给定状态码与错误码返回失败响应
func FailWith(c *gin.Context, httpStatus int, code errors.ErrorCode, message string) {
	c.JSON(httpStatus, Response[any]{
		Success: false,
		Error: &ErrorDetail{
			Code:    string(code),
			Message: message,
		},
		TraceID: c.GetString("trace_id"),
	})
}
