// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 资源错误 (3xxx)
	CodeInvalidIndex ErrorCode = "3101"
	CodePoemNotFound ErrorCode = "3102"

	// 业务错误 (4xxx)
	CodePoemFetchFailed ErrorCode = "4101"

	// 上游服务错误 (5xxx)
	CodeUpstreamHTTP    ErrorCode = "5101"
	CodeUpstreamFormat  ErrorCode = "5102"
	CodeUpstreamTimeout ErrorCode = "5103"
	CodeStoreError      ErrorCode = "5201"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeInvalidIndex:
		return http.StatusBadRequest
	case CodeNotFound, CodePoemNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeUpstreamHTTP, CodeUpstreamFormat, CodePoemFetchFailed:
		return http.StatusBadGateway
	case CodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UpstreamHTTP 上游返回非 2xx 状态
func UpstreamHTTP(source string, status int) *AppError {
	return New(CodeUpstreamHTTP, fmt.Sprintf("%s returned http status %d", source, status))
}

// UpstreamFormat 上游响应缺少必需字段或形状不符
func UpstreamFormat(source, reason string) *AppError {
	return New(CodeUpstreamFormat, fmt.Sprintf("unexpected response from %s", source)).WithDetail(reason)
}

// UpstreamTimeout 上游请求超时
func UpstreamTimeout(source string) *AppError {
	return New(CodeUpstreamTimeout, fmt.Sprintf("request to %s timed out", source))
}

// NoPoemFound 按作者或行数筛选结果为空
func NoPoemFound(criterion string) *AppError {
	return New(CodePoemNotFound, fmt.Sprintf("no poem found for %s", criterion))
}

// InvalidIndex 本地样本索引越界
func InvalidIndex(index int) *AppError {
	return New(CodeInvalidIndex, fmt.Sprintf("invalid poem index %d", index))
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsCode 检查错误是否携带指定错误码
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
