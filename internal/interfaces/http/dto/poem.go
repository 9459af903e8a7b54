package dto

import (
	"time"

	"poem-tab-api/internal/domain/entity"
)

// PoemResponse 诗词响应
type PoemResponse struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Dynasty     string `json:"dynasty,omitempty"`
	Translation string `json:"translation,omitempty"`
	Source      string `json:"source,omitempty"`
	Link        string `json:"link,omitempty"`
	Language    string `json:"language"`
}

// FromPoemRecord 领域记录转响应
func FromPoemRecord(p *entity.PoemRecord) *PoemResponse {
	if p == nil {
		return nil
	}
	return &PoemResponse{
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		Dynasty:     p.Dynasty,
		Translation: p.Translation,
		Source:      p.Source,
		Link:        p.Link,
		Language:    string(p.Language),
	}
}

// IndexStateResponse 当前样本索引
type IndexStateResponse struct {
	Index int `json:"index"`
}

// SetIndexRequest 设置样本索引请求
type SetIndexRequest struct {
	Index *int `json:"index" binding:"required"`
}

// LanguageStateResponse 当前语言偏好
type LanguageStateResponse struct {
	Language string `json:"language"`
}

// SetLanguageRequest 设置语言偏好请求
type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// FetchRecordResponse 取诗历史记录
type FetchRecordResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Language  string    `json:"language"`
	Source    string    `json:"source"`
	Route     string    `json:"route"`
	Tags      []string  `json:"tags,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FetchHistoryResponse 取诗历史列表
type FetchHistoryResponse struct {
	Records []*FetchRecordResponse `json:"records"`
}

// FromFetchRecord 领域历史记录转响应
func FromFetchRecord(r *entity.FetchRecord) *FetchRecordResponse {
	if r == nil {
		return nil
	}
	return &FetchRecordResponse{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		Language:  string(r.Language),
		Source:    r.Source,
		Route:     string(r.Route),
		Tags:      r.Tags,
		FetchedAt: r.FetchedAt,
	}
}
