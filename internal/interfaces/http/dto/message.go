package dto

import "encoding/json"

// 消息类型，对应浏览器端发来的指令
const (
	MessageGetRandomPoem     = "GET_RANDOM_POEM"
	MessageGetPoemByCategory = "GET_POEM_BY_CATEGORY"
	MessageGetPoem           = "GET_POEM"
	MessageGetCurrentIndex   = "GET_CURRENT_INDEX"
	MessageSetCurrentIndex   = "SET_CURRENT_INDEX"
	MessageGetLanguage       = "GET_LANGUAGE"
	MessageSetLanguage       = "SET_LANGUAGE"
)

// MessageRequest 消息中继请求
// payload 形状由 type 决定，延迟解码
type MessageRequest struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CategoryPayload GET_POEM_BY_CATEGORY 负载
type CategoryPayload struct {
	Category string `json:"category"`
}

// IndexPayload GET_POEM / SET_CURRENT_INDEX 负载
type IndexPayload struct {
	Index *int `json:"index"`
}

// LanguagePayload SET_LANGUAGE 负载
type LanguagePayload struct {
	Language string `json:"language"`
}
