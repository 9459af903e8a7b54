// Package jinrishici 提供中文诗词上游客户端
package jinrishici

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"poem-tab-api/internal/config"
	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/metrics"
)

var tracer = otel.Tracer("upstream.jinrishici")

const (
	// SourceName 归因用的来源标识
	SourceName = "今日诗词 API"

	attributionLink = "https://www.jinrishici.com"
	upstreamLabel   = "jinrishici"
)

// Client 今日诗词 API 客户端
// 所有请求带显式取消超时，单次往返，失败不重试
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg *config.JinrishiciConfig) *Client {
	timeout := cfg.RandomTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Random 获取一首随机诗词
func (c *Client) Random(ctx context.Context) (*entity.PoemRecord, error) {
	return c.fetch(ctx, "all", "random")
}

// ByCategory 按分类获取诗词
// 分类字符串原样转发给上游，无效分类表现为上游自身的 HTTP/格式错误
func (c *Client) ByCategory(ctx context.Context, category string) (*entity.PoemRecord, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = "all"
	}
	return c.fetch(ctx, category, "category")
}

// fetch 执行一次 GET {base}/{category}.json 并归一化响应
func (c *Client) fetch(ctx context.Context, category, op string) (*entity.PoemRecord, error) {
	ctx, span := tracer.Start(ctx, "jinrishici.fetch",
		trace.WithAttributes(attribute.String("category", category)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	endpoint := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(category))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(upstreamLabel, op).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		if ctx.Err() == context.DeadlineExceeded {
			metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "timeout").Inc()
			return nil, errors.UpstreamTimeout(SourceName)
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "network_error").Inc()
		return nil, errors.Wrap(err, errors.CodeServiceUnavailable, "failed to reach "+SourceName)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "http_error").Inc()
		return nil, errors.UpstreamHTTP(SourceName, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "network_error").Inc()
		return nil, errors.Wrap(err, errors.CodeServiceUnavailable, "failed to read response from "+SourceName)
	}

	poem, err := mapResponse(body)
	if err != nil {
		span.RecordError(err)
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "format_error").Inc()
		return nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "ok").Inc()
	return poem, nil
}

// rawPoem 上游原始响应
type rawPoem struct {
	Content string `json:"content"`
	Origin  string `json:"origin"`
	Author  string `json:"author"`
	Dynasty string `json:"dynasty"`
}

// mapResponse 校验并映射原始响应到 PoemRecord
// origin→title (默认 无题)，author→author (默认 佚名)，dynasty 可为空
func mapResponse(body []byte) (*entity.PoemRecord, error) {
	var raw rawPoem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.UpstreamFormat(SourceName, "response is not valid JSON")
	}

	if strings.TrimSpace(raw.Content) == "" {
		return nil, errors.UpstreamFormat(SourceName, "missing content field")
	}

	poem := &entity.PoemRecord{
		Title:    raw.Origin,
		Content:  raw.Content,
		Author:   raw.Author,
		Dynasty:  raw.Dynasty,
		Source:   SourceName,
		Link:     attributionLink,
		Language: entity.LanguageChinese,
	}
	poem.Normalize()
	return poem, nil
}
