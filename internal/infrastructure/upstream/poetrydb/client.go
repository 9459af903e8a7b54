// Package poetrydb 提供英文诗词上游客户端
package poetrydb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
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

var tracer = otel.Tracer("upstream.poetrydb")

const (
	// SourceName 归因用的来源标识
	SourceName = "PoetryDB"

	attributionLink = "https://poetrydb.org"
	upstreamLabel   = "poetrydb"
)

// Client PoetryDB 客户端
// 没有请求级取消，依赖传输层超时；筛选后的随机选取在本地完成，不再发起第二次请求
type Client struct {
	baseURL    string
	fields     string
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(cfg *config.PoetryDBConfig) *Client {
	fields := cfg.Fields
	if fields == "" {
		fields = "title,author,lines"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		fields:  fields,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Random 获取一首随机英文诗
// 上游返回数组，取第一个元素
func (c *Client) Random(ctx context.Context) (*entity.PoemRecord, error) {
	poems, err := c.fetch(ctx, c.baseURL+"/random/1", "random")
	if err != nil {
		return nil, err
	}
	if len(poems) == 0 {
		return nil, errors.UpstreamFormat(SourceName, "empty result array")
	}
	return mapPoem(&poems[0])
}

// ByAuthor 按作者获取诗，从结果集中均匀随机选取一首
func (c *Client) ByAuthor(ctx context.Context, author string) (*entity.PoemRecord, error) {
	endpoint := fmt.Sprintf("%s/author/%s/%s", c.baseURL, url.PathEscape(author), c.fields)
	poems, err := c.fetch(ctx, endpoint, "by_author")
	if err != nil {
		return nil, err
	}
	if len(poems) == 0 {
		return nil, errors.NoPoemFound("author " + author)
	}
	return mapPoem(&poems[rand.Intn(len(poems))])
}

// ByLineCount 按行数获取诗，从结果集中均匀随机选取一首
func (c *Client) ByLineCount(ctx context.Context, lineCount int) (*entity.PoemRecord, error) {
	endpoint := fmt.Sprintf("%s/linecount/%d/%s", c.baseURL, lineCount, c.fields)
	poems, err := c.fetch(ctx, endpoint, "by_linecount")
	if err != nil {
		return nil, err
	}
	if len(poems) == 0 {
		return nil, errors.NoPoemFound(fmt.Sprintf("linecount %d", lineCount))
	}
	return mapPoem(&poems[rand.Intn(len(poems))])
}

// fetch 执行一次 GET 并解析数组响应
// PoetryDB 无匹配时返回一个对象而不是数组，按空结果处理
func (c *Client) fetch(ctx context.Context, endpoint, op string) ([]rawPoem, error) {
	ctx, span := tracer.Start(ctx, "poetrydb.fetch",
		trace.WithAttributes(attribute.String("op", op)))
	defer span.End()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(upstreamLabel, op).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
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

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		// 对象响应：随机接口视为格式错误，筛选接口视为空结果
		if op == "random" {
			metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "format_error").Inc()
			return nil, errors.UpstreamFormat(SourceName, "expected a JSON array")
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "ok").Inc()
		return nil, nil
	}

	var poems []rawPoem
	if err := json.Unmarshal(trimmed, &poems); err != nil {
		span.RecordError(err)
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "format_error").Inc()
		return nil, errors.UpstreamFormat(SourceName, "response is not a poem array")
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(upstreamLabel, op, "ok").Inc()
	return poems, nil
}

// rawPoem 上游原始响应元素
type rawPoem struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Lines   []string `json:"lines"`
	Content string   `json:"content"`
}

// mapPoem 校验并映射原始响应到 PoemRecord
// lines 数组按换行拼接，缺失时回退到 content 字段
func mapPoem(raw *rawPoem) (*entity.PoemRecord, error) {
	content := strings.Join(raw.Lines, "\n")
	if content == "" {
		content = raw.Content
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.UpstreamFormat(SourceName, "poem has no lines")
	}

	poem := &entity.PoemRecord{
		Title:    raw.Title,
		Content:  content,
		Author:   raw.Author,
		Source:   SourceName,
		Link:     attributionLink,
		Language: entity.LanguageEnglish,
	}
	poem.Normalize()
	return poem, nil
}
