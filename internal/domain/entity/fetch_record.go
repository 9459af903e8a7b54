package entity

import "time"

// FetchRoute 取诗路径
type FetchRoute string

const (
	FetchRouteRandom   FetchRoute = "random"
	FetchRouteCategory FetchRoute = "category"
	FetchRouteIndex    FetchRoute = "index"
)

// FetchRecord 一次成功下发诗词的历史记录
type FetchRecord struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Language  Language   `json:"language"`
	Source    string     `json:"source"`
	Route     FetchRoute `json:"route"`
	Tags      []string   `json:"tags,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// NewFetchRecord 从诗词记录创建历史记录
func NewFetchRecord(poem *PoemRecord, route FetchRoute, tags []string) *FetchRecord {
	return &FetchRecord{
		Title:     poem.Title,
		Author:    poem.Author,
		Language:  poem.Language,
		Source:    poem.Source,
		Route:     route,
		Tags:      tags,
		FetchedAt: time.Now(),
	}
}
