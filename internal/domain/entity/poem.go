// Package entity 定义领域实体
package entity

import "strings"

// Language 诗词语言
type Language string

const (
	LanguageChinese Language = "chinese"
	LanguageEnglish Language = "english"
)

// ParseLanguage 解析语言字符串
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageChinese:
		return LanguageChinese, true
	case LanguageEnglish:
		return LanguageEnglish, true
	default:
		return "", false
	}
}

// 缺省占位值
const (
	UntitledZh = "无题"
	UnknownZh  = "佚名"
	UntitledEn = "Untitled"
	UnknownEn  = "Unknown"
)

// PoemRecord 归一化的诗词记录
// 不论来自哪个上游，title/content/author/language 永远非空
type PoemRecord struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	Dynasty     string   `json:"dynasty,omitempty"`
	Translation string   `json:"translation,omitempty"`
	Source      string   `json:"source"`
	Link        string   `json:"link,omitempty"`
	Language    Language `json:"language"`
}

// Normalize 为缺失字段填充占位值
func (p *PoemRecord) Normalize() {
	if p.Language == "" {
		p.Language = LanguageChinese
	}
	untitled, unknown := UntitledZh, UnknownZh
	if p.Language == LanguageEnglish {
		untitled, unknown = UntitledEn, UnknownEn
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = untitled
	}
	if strings.TrimSpace(p.Author) == "" {
		p.Author = unknown
	}
}

// IsComplete 检查记录是否满足非空不变量
func (p *PoemRecord) IsComplete() bool {
	return p.Title != "" && p.Content != "" && p.Author != "" &&
		(p.Language == LanguageChinese || p.Language == LanguageEnglish)
}
