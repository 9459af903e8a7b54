package poem

import (
	"context"
	stderrors "errors"
	"testing"

	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/pkg/errors"
)

// stubPrefs 内存偏好存储
type stubPrefs struct {
	lang     entity.Language
	index    int
	indexSet bool
}

func (s *stubPrefs) GetLanguage(ctx context.Context, installID string) (entity.Language, error) {
	if s.lang == "" {
		return entity.LanguageChinese, nil
	}
	return s.lang, nil
}

func (s *stubPrefs) SetLanguage(ctx context.Context, installID string, lang entity.Language) error {
	s.lang = lang
	return nil
}

func (s *stubPrefs) GetCurrentIndex(ctx context.Context, installID string) (int, error) {
	if !s.indexSet {
		return 0, nil
	}
	return s.index, nil
}

func (s *stubPrefs) SetCurrentIndex(ctx context.Context, installID string, index int) error {
	if index < 0 {
		return errors.InvalidIndex(index)
	}
	s.index = index
	s.indexSet = true
	return nil
}

// stubChinese 记录调用次数的中文客户端
type stubChinese struct {
	randomCalls   int
	categoryCalls int
	lastCategory  string
	err           error
}

func (s *stubChinese) Random(ctx context.Context) (*entity.PoemRecord, error) {
	s.randomCalls++
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PoemRecord{Title: "静夜思", Content: "床前明月光", Author: "李白", Language: entity.LanguageChinese}, nil
}

func (s *stubChinese) ByCategory(ctx context.Context, category string) (*entity.PoemRecord, error) {
	s.categoryCalls++
	s.lastCategory = category
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PoemRecord{Title: "春晓", Content: "春眠不觉晓", Author: "孟浩然", Language: entity.LanguageChinese}, nil
}

// stubEnglish 记录调用次数的英文客户端
type stubEnglish struct {
	randomCalls    int
	authorCalls    int
	lineCountCalls int
	lastAuthor     string
	lastLineCount  int
	err            error
}

func (s *stubEnglish) Random(ctx context.Context) (*entity.PoemRecord, error) {
	s.randomCalls++
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PoemRecord{Title: "Hope", Content: "Hope is the thing", Author: "Emily Dickinson", Language: entity.LanguageEnglish}, nil
}

func (s *stubEnglish) ByAuthor(ctx context.Context, author string) (*entity.PoemRecord, error) {
	s.authorCalls++
	s.lastAuthor = author
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PoemRecord{Title: "A", Content: "c", Author: author, Language: entity.LanguageEnglish}, nil
}

func (s *stubEnglish) ByLineCount(ctx context.Context, lineCount int) (*entity.PoemRecord, error) {
	s.lineCountCalls++
	s.lastLineCount = lineCount
	if s.err != nil {
		return nil, s.err
	}
	return &entity.PoemRecord{Title: "Q", Content: "c", Author: "Anon", Language: entity.LanguageEnglish}, nil
}

// memHistory 内存历史仓储
type memHistory struct {
	records []*entity.FetchRecord
}

func (m *memHistory) Record(ctx context.Context, rec *entity.FetchRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memHistory) ListRecent(ctx context.Context, limit int) ([]*entity.FetchRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func newTestService(prefs *stubPrefs, zh *stubChinese, en *stubEnglish) *Service {
	return NewService(prefs, zh, en, nil)
}

func TestGetPoemReturnsExactSample(t *testing.T) {
	zh, en := &stubChinese{}, &stubEnglish{}
	svc := newTestService(&stubPrefs{}, zh, en)

	for i := 0; i < entity.SampleCount(); i++ {
		want, _ := entity.SampleAt(i)
		got, err := svc.GetPoem(context.Background(), "default", i)
		if err != nil {
			t.Fatalf("GetPoem(%d) error: %v", i, err)
		}
		if *got != want {
			t.Errorf("GetPoem(%d) = %+v, want %+v", i, *got, want)
		}
	}

	// 本地索引取诗不触网
	if zh.randomCalls+zh.categoryCalls+en.randomCalls+en.authorCalls+en.lineCountCalls != 0 {
		t.Error("local sample lookup must not call any upstream")
	}
}

func TestGetPoemOutOfRange(t *testing.T) {
	svc := newTestService(&stubPrefs{}, &stubChinese{}, &stubEnglish{})

	for _, index := range []int{entity.SampleCount(), -2, entity.SampleCount() + 100} {
		_, err := svc.GetPoem(context.Background(), "default", index)
		if !errors.IsCode(err, errors.CodeInvalidIndex) {
			t.Errorf("GetPoem(%d) error = %v, want code %s", index, err, errors.CodeInvalidIndex)
		}
	}
}

func TestGetPoemSentinelDelegatesToRandom(t *testing.T) {
	zh, en := &stubChinese{}, &stubEnglish{}
	svc := newTestService(&stubPrefs{lang: entity.LanguageEnglish}, zh, en)

	if _, err := svc.GetPoem(context.Background(), "default", entity.SampleIndexRandom); err != nil {
		t.Fatalf("GetPoem(-1) error: %v", err)
	}
	if en.randomCalls != 1 {
		t.Errorf("english random calls = %d, want 1", en.randomCalls)
	}
	if zh.randomCalls != 0 {
		t.Errorf("chinese random calls = %d, want 0", zh.randomCalls)
	}
}

func TestRandomRoutesByPreference(t *testing.T) {
	prefs := &stubPrefs{}
	zh, en := &stubChinese{}, &stubEnglish{}
	svc := newTestService(prefs, zh, en)
	ctx := context.Background()

	poem, err := svc.GetRandomPoem(ctx, "default")
	if err != nil {
		t.Fatalf("GetRandomPoem() error: %v", err)
	}
	if poem.Language != entity.LanguageChinese {
		t.Errorf("default preference should serve chinese, got %q", poem.Language)
	}
	if zh.randomCalls != 1 || en.randomCalls != 0 {
		t.Errorf("calls = (zh %d, en %d), want (1, 0)", zh.randomCalls, en.randomCalls)
	}

	// 偏好切换后立即生效，且不再访问中文上游
	prefs.lang = entity.LanguageEnglish
	poem, err = svc.GetRandomPoem(ctx, "default")
	if err != nil {
		t.Fatalf("GetRandomPoem() error: %v", err)
	}
	if poem.Language != entity.LanguageEnglish {
		t.Errorf("english preference should serve english, got %q", poem.Language)
	}
	if zh.randomCalls != 1 || en.randomCalls != 1 {
		t.Errorf("calls = (zh %d, en %d), want (1, 1)", zh.randomCalls, en.randomCalls)
	}
}

func TestRandomWrapsClientFailure(t *testing.T) {
	cause := errors.UpstreamHTTP("今日诗词 API", 502)
	zh := &stubChinese{err: cause}
	svc := newTestService(&stubPrefs{}, zh, &stubEnglish{})

	_, err := svc.GetRandomPoem(context.Background(), "default")
	if !errors.IsCode(err, errors.CodePoemFetchFailed) {
		t.Fatalf("error = %v, want code %s", err, errors.CodePoemFetchFailed)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error must retain its cause")
	}
}

func TestCategoryRoutingEnglish(t *testing.T) {
	cases := []struct {
		category string
		check    func(t *testing.T, en *stubEnglish)
	}{
		{"author/Emily Dickinson", func(t *testing.T, en *stubEnglish) {
			if en.authorCalls != 1 || en.lastAuthor != "Emily Dickinson" {
				t.Errorf("author routing failed: %+v", en)
			}
		}},
		{"linecount/14", func(t *testing.T, en *stubEnglish) {
			if en.lineCountCalls != 1 || en.lastLineCount != 14 {
				t.Errorf("linecount routing failed: %+v", en)
			}
		}},
		{"random", func(t *testing.T, en *stubEnglish) {
			if en.randomCalls != 1 {
				t.Errorf("random routing failed: %+v", en)
			}
		}},
		{"all", func(t *testing.T, en *stubEnglish) {
			if en.randomCalls != 1 {
				t.Errorf("all routing failed: %+v", en)
			}
		}},
		{"sonnets", func(t *testing.T, en *stubEnglish) {
			// 未知分类静默回退到随机
			if en.randomCalls != 1 {
				t.Errorf("unknown category should route to random: %+v", en)
			}
		}},
		{"", func(t *testing.T, en *stubEnglish) {
			if en.randomCalls != 1 {
				t.Errorf("empty category should route to random: %+v", en)
			}
		}},
		{"linecount/abc", func(t *testing.T, en *stubEnglish) {
			// 行数无法解析按未知分类处理
			if en.randomCalls != 1 || en.lineCountCalls != 0 {
				t.Errorf("bad linecount should route to random: %+v", en)
			}
		}},
	}

	for _, c := range cases {
		t.Run("category="+c.category, func(t *testing.T) {
			zh, en := &stubChinese{}, &stubEnglish{}
			svc := newTestService(&stubPrefs{lang: entity.LanguageEnglish}, zh, en)

			if _, err := svc.GetPoemByCategory(context.Background(), "default", c.category); err != nil {
				t.Fatalf("GetPoemByCategory(%q) error: %v", c.category, err)
			}
			c.check(t, en)
			if zh.randomCalls+zh.categoryCalls != 0 {
				t.Error("english preference must never hit the chinese upstream")
			}
		})
	}
}

func TestCategoryForwardedVerbatimForChinese(t *testing.T) {
	zh, en := &stubChinese{}, &stubEnglish{}
	svc := newTestService(&stubPrefs{lang: entity.LanguageChinese}, zh, en)

	if _, err := svc.GetPoemByCategory(context.Background(), "default", "spring"); err != nil {
		t.Fatalf("GetPoemByCategory() error: %v", err)
	}
	if zh.categoryCalls != 1 || zh.lastCategory != "spring" {
		t.Errorf("category not forwarded verbatim: %+v", zh)
	}
}

func TestCategoryErrorPropagatesUnwrapped(t *testing.T) {
	cause := errors.UpstreamHTTP("今日诗词 API", 404)
	zh := &stubChinese{err: cause}
	svc := newTestService(&stubPrefs{}, zh, &stubEnglish{})

	_, err := svc.GetPoemByCategory(context.Background(), "default", "spring")
	if !errors.IsCode(err, errors.CodeUpstreamHTTP) {
		t.Fatalf("error = %v, want code %s untranslated", err, errors.CodeUpstreamHTTP)
	}
}

func TestCurrentIndexRoundTrip(t *testing.T) {
	prefs := &stubPrefs{}
	svc := newTestService(prefs, &stubChinese{}, &stubEnglish{})
	ctx := context.Background()

	// 未设置时返回 0
	index, err := svc.GetCurrentIndex(ctx, "default")
	if err != nil || index != 0 {
		t.Fatalf("GetCurrentIndex() = (%d, %v), want (0, nil)", index, err)
	}

	if err := svc.SetCurrentIndex(ctx, "default", 3); err != nil {
		t.Fatalf("SetCurrentIndex(3) error: %v", err)
	}
	index, err = svc.GetCurrentIndex(ctx, "default")
	if err != nil || index != 3 {
		t.Fatalf("GetCurrentIndex() = (%d, %v), want (3, nil)", index, err)
	}

	if err := svc.SetCurrentIndex(ctx, "default", -1); !errors.IsCode(err, errors.CodeInvalidIndex) {
		t.Errorf("SetCurrentIndex(-1) error = %v, want code %s", err, errors.CodeInvalidIndex)
	}
}

func TestSuccessfulFetchIsRecorded(t *testing.T) {
	hist := &memHistory{}
	svc := NewService(&stubPrefs{}, &stubChinese{}, &stubEnglish{}, hist)

	if _, err := svc.GetRandomPoem(context.Background(), "default"); err != nil {
		t.Fatalf("GetRandomPoem() error: %v", err)
	}

	if len(hist.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(hist.records))
	}
	rec := hist.records[0]
	if rec.Title != "静夜思" || rec.Route != entity.FetchRouteRandom {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestFailedFetchIsNotRecorded(t *testing.T) {
	hist := &memHistory{}
	svc := NewService(&stubPrefs{}, &stubChinese{err: errors.UpstreamHTTP("今日诗词 API", 500)}, &stubEnglish{}, hist)

	if _, err := svc.GetRandomPoem(context.Background(), "default"); err == nil {
		t.Fatal("expected error")
	}
	if len(hist.records) != 0 {
		t.Errorf("history records = %d, want 0", len(hist.records))
	}
}
