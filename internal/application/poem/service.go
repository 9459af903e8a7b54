// Package poem 提供取诗服务门面
package poem

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/domain/repository"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/logger"
	"poem-tab-api/pkg/metrics"
)

var tracer = otel.Tracer("poem.service")

// ChineseClient 中文诗词上游能力
type ChineseClient interface {
	Random(ctx context.Context) (*entity.PoemRecord, error)
	ByCategory(ctx context.Context, category string) (*entity.PoemRecord, error)
}

// EnglishClient 英文诗词上游能力
type EnglishClient interface {
	Random(ctx context.Context) (*entity.PoemRecord, error)
	ByAuthor(ctx context.Context, author string) (*entity.PoemRecord, error)
	ByLineCount(ctx context.Context, lineCount int) (*entity.PoemRecord, error)
}

// Service 取诗服务门面
// 无持久状态：路由在每次请求时根据注入的偏好存储重新推导，
// 偏好改变后的下一次请求立即生效
type Service struct {
	prefs   repository.PreferenceStore
	chinese ChineseClient
	english EnglishClient
	history repository.FetchHistoryRepository // 可为 nil，历史记录 best-effort
}

// NewService 创建取诗服务
func NewService(
	prefs repository.PreferenceStore,
	chinese ChineseClient,
	english EnglishClient,
	history repository.FetchHistoryRepository,
) *Service {
	return &Service{
		prefs:   prefs,
		chinese: chinese,
		english: english,
		history: history,
	}
}

// GetRandomPoem 按语言偏好获取一首随机诗词
// 上游失败包装为取诗失败错误，保留原因
func (s *Service) GetRandomPoem(ctx context.Context, installID string) (*entity.PoemRecord, error) {
	ctx, span := tracer.Start(ctx, "poem.GetRandomPoem")
	defer span.End()

	lang, err := s.prefs.GetLanguage(ctx, installID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("language", string(lang)))

	var poem *entity.PoemRecord
	if lang == entity.LanguageEnglish {
		poem, err = s.english.Random(ctx)
	} else {
		poem, err = s.chinese.Random(ctx)
	}
	if err != nil {
		span.RecordError(err)
		metrics.PoemFetchFailures.WithLabelValues(string(lang), string(errors.AsAppError(err).Code)).Inc()
		return nil, errors.Wrap(err, errors.CodePoemFetchFailed, "failed to fetch poem")
	}

	s.recordFetch(ctx, poem, entity.FetchRouteRandom, nil)
	metrics.PoemsServedTotal.WithLabelValues(string(poem.Language), "random").Inc()
	return poem, nil
}

// GetPoemByCategory 按分类获取诗词
//
// 英文偏好下的分类路由：
//   - "author/<name>"    按作者查询
//   - "linecount/<n>"    按行数查询
//   - "random"、"all" 或无法识别的分类回退到随机（记录警告，不报错）
//
// 中文偏好下分类字符串原样转发给上游
func (s *Service) GetPoemByCategory(ctx context.Context, installID, category string) (*entity.PoemRecord, error) {
	ctx, span := tracer.Start(ctx, "poem.GetPoemByCategory",
		trace.WithAttributes(attribute.String("category", category)))
	defer span.End()

	lang, err := s.prefs.GetLanguage(ctx, installID)
	if err != nil {
		return nil, err
	}

	var poem *entity.PoemRecord
	if lang == entity.LanguageEnglish {
		poem, err = s.englishByCategory(ctx, category)
	} else {
		poem, err = s.chinese.ByCategory(ctx, category)
	}
	if err != nil {
		span.RecordError(err)
		metrics.PoemFetchFailures.WithLabelValues(string(lang), string(errors.AsAppError(err).Code)).Inc()
		return nil, err
	}

	s.recordFetch(ctx, poem, entity.FetchRouteCategory, []string{category})
	metrics.PoemsServedTotal.WithLabelValues(string(poem.Language), "category").Inc()
	return poem, nil
}

// englishByCategory 解析英文分类并路由到对应的上游查询
func (s *Service) englishByCategory(ctx context.Context, category string) (*entity.PoemRecord, error) {
	category = strings.TrimSpace(category)

	if name, ok := strings.CutPrefix(category, "author/"); ok && name != "" {
		return s.english.ByAuthor(ctx, name)
	}

	if raw, ok := strings.CutPrefix(category, "linecount/"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return s.english.ByLineCount(ctx, n)
		}
	}

	if category != "random" && category != "all" {
		// 未知分类静默回退到随机，仅记录警告
		logger.Warn(ctx, "unrecognized category, falling back to random", "category", category)
	}
	return s.english.Random(ctx)
}

// GetPoem 按索引获取诗词
// -1 表示改用随机选取；合法索引直接返回本地样本，不发起网络请求
func (s *Service) GetPoem(ctx context.Context, installID string, index int) (*entity.PoemRecord, error) {
	ctx, span := tracer.Start(ctx, "poem.GetPoem",
		trace.WithAttributes(attribute.Int("index", index)))
	defer span.End()

	if index == entity.SampleIndexRandom {
		return s.GetRandomPoem(ctx, installID)
	}

	sample, ok := entity.SampleAt(index)
	if !ok {
		return nil, errors.InvalidIndex(index)
	}

	metrics.PoemsServedTotal.WithLabelValues(string(sample.Language), "sample").Inc()
	return &sample, nil
}

// GetCurrentIndex 读取当前索引，未设置时返回 0
func (s *Service) GetCurrentIndex(ctx context.Context, installID string) (int, error) {
	return s.prefs.GetCurrentIndex(ctx, installID)
}

// SetCurrentIndex 写入当前索引
func (s *Service) SetCurrentIndex(ctx context.Context, installID string, index int) error {
	return s.prefs.SetCurrentIndex(ctx, installID, index)
}

// GetLanguage 读取语言偏好
func (s *Service) GetLanguage(ctx context.Context, installID string) (entity.Language, error) {
	return s.prefs.GetLanguage(ctx, installID)
}

// SetLanguage 写入语言偏好，仅由用户显式操作触发
func (s *Service) SetLanguage(ctx context.Context, installID string, lang entity.Language) error {
	return s.prefs.SetLanguage(ctx, installID, lang)
}

// SampleCount 本地样本集长度
func (s *Service) SampleCount() int {
	return entity.SampleCount()
}

// recordFetch 历史记录写入失败只影响日志，从不影响取诗结果
func (s *Service) recordFetch(ctx context.Context, poem *entity.PoemRecord, route entity.FetchRoute, tags []string) {
	if s.history == nil {
		return
	}
	rec := entity.NewFetchRecord(poem, route, tags)
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn(ctx, "failed to record fetch history", "error", err.Error())
	}
}
