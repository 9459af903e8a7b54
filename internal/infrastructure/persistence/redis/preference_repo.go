package redis

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/domain/repository"
	"poem-tab-api/pkg/errors"
	"poem-tab-api/pkg/metrics"
)

// 每个安装实例两个逻辑键：语言偏好与当前索引
// 单键独立一致，last-write-wins
const (
	keyPrefix = "poemtab"
	keyLang   = "lang"
	keyIndex  = "index"
)

// PreferenceRepository 基于 Redis 的持久键值存储
type PreferenceRepository struct {
	client *Client
}

var _ repository.PreferenceStore = (*PreferenceRepository)(nil)

// NewPreferenceRepository 创建偏好存储
func NewPreferenceRepository(client *Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

func stateKey(installID, field string) string {
	if installID == "" {
		installID = "default"
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, installID, field)
}

// GetLanguage 读取语言偏好，未设置时返回 chinese
func (r *PreferenceRepository) GetLanguage(ctx context.Context, installID string) (entity.Language, error) {
	ctx, span := tracer.Start(ctx, "preference.GetLanguage",
		trace.WithAttributes(attribute.String("install_id", installID)))
	defer span.End()

	val, err := r.client.Get(ctx, stateKey(installID, keyLang))
	if err != nil {
		if IsNil(err) {
			metrics.StoreOpsTotal.WithLabelValues("get_language", "miss").Inc()
			return entity.LanguageChinese, nil
		}
		metrics.StoreOpsTotal.WithLabelValues("get_language", "error").Inc()
		return "", errors.Wrap(err, errors.CodeStoreError, "failed to read language preference")
	}

	lang, ok := entity.ParseLanguage(val)
	if !ok {
		// 存储中出现未知值时回退到默认语言而不是报错
		metrics.StoreOpsTotal.WithLabelValues("get_language", "invalid").Inc()
		return entity.LanguageChinese, nil
	}
	metrics.StoreOpsTotal.WithLabelValues("get_language", "ok").Inc()
	return lang, nil
}

// SetLanguage 写入语言偏好
func (r *PreferenceRepository) SetLanguage(ctx context.Context, installID string, lang entity.Language) error {
	ctx, span := tracer.Start(ctx, "preference.SetLanguage",
		trace.WithAttributes(attribute.String("language", string(lang))))
	defer span.End()

	if lang != entity.LanguageChinese && lang != entity.LanguageEnglish {
		return errors.ErrInvalidParam.WithDetail(fmt.Sprintf("unsupported language %q", lang))
	}

	if err := r.client.Set(ctx, stateKey(installID, keyLang), string(lang), 0); err != nil {
		metrics.StoreOpsTotal.WithLabelValues("set_language", "error").Inc()
		return errors.Wrap(err, errors.CodeStoreError, "failed to persist language preference")
	}
	metrics.StoreOpsTotal.WithLabelValues("set_language", "ok").Inc()
	return nil
}

// GetCurrentIndex 读取当前索引，未设置时返回 0
func (r *PreferenceRepository) GetCurrentIndex(ctx context.Context, installID string) (int, error) {
	ctx, span := tracer.Start(ctx, "preference.GetCurrentIndex",
		trace.WithAttributes(attribute.String("install_id", installID)))
	defer span.End()

	val, err := r.client.Get(ctx, stateKey(installID, keyIndex))
	if err != nil {
		if IsNil(err) {
			metrics.StoreOpsTotal.WithLabelValues("get_index", "miss").Inc()
			return 0, nil
		}
		metrics.StoreOpsTotal.WithLabelValues("get_index", "error").Inc()
		return 0, errors.Wrap(err, errors.CodeStoreError, "failed to read current index")
	}

	index, err := strconv.Atoi(val)
	if err != nil || index < 0 {
		metrics.StoreOpsTotal.WithLabelValues("get_index", "invalid").Inc()
		return 0, nil
	}
	metrics.StoreOpsTotal.WithLabelValues("get_index", "ok").Inc()
	return index, nil
}

// SetCurrentIndex 写入当前索引
func (r *PreferenceRepository) SetCurrentIndex(ctx context.Context, installID string, index int) error {
	ctx, span := tracer.Start(ctx, "preference.SetCurrentIndex",
		trace.WithAttributes(attribute.Int("index", index)))
	defer span.End()

	if index < 0 {
		return errors.InvalidIndex(index)
	}

	if err := r.client.Set(ctx, stateKey(installID, keyIndex), strconv.Itoa(index), 0); err != nil {
		metrics.StoreOpsTotal.WithLabelValues("set_index", "error").Inc()
		return errors.Wrap(err, errors.CodeStoreError, "failed to persist current index")
	}
	metrics.StoreOpsTotal.WithLabelValues("set_index", "ok").Inc()
	return nil
}
