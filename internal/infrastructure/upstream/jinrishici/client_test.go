package jinrishici

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poem-tab-api/internal/config"
	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/pkg/errors"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(&config.JinrishiciConfig{
		BaseURL:       baseURL,
		RandomTimeout: timeout,
	})
}

func TestRandomMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all.json" {
			t.Errorf("path = %q, want /all.json", r.URL.Path)
		}
		w.Write([]byte(`{"content":"床前明月光","origin":"静夜思","author":"李白"}`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL, time.Second).Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}

	if poem.Title != "静夜思" {
		t.Errorf("Title = %q, want 静夜思", poem.Title)
	}
	if poem.Author != "李白" {
		t.Errorf("Author = %q, want 李白", poem.Author)
	}
	if poem.Language != entity.LanguageChinese {
		t.Errorf("Language = %q, want chinese", poem.Language)
	}
	if poem.Source != SourceName {
		t.Errorf("Source = %q, want %q", poem.Source, SourceName)
	}
}

func TestRandomFillsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"白日依山尽"}`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL, time.Second).Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}

	if poem.Title != entity.UntitledZh {
		t.Errorf("Title = %q, want %q", poem.Title, entity.UntitledZh)
	}
	if poem.Author != entity.UnknownZh {
		t.Errorf("Author = %q, want %q", poem.Author, entity.UnknownZh)
	}
}

func TestByCategoryRequestsCategoryPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"content":"春眠不觉晓","origin":"春晓","author":"孟浩然"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).ByCategory(context.Background(), "spring")
	if err != nil {
		t.Fatalf("ByCategory() error: %v", err)
	}
	if gotPath != "/spring.json" {
		t.Errorf("path = %q, want /spring.json", gotPath)
	}
}

func TestByCategoryEmptyFallsBackToAll(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"content":"x"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, time.Second).ByCategory(context.Background(), ""); err != nil {
		t.Fatalf("ByCategory() error: %v", err)
	}
	if gotPath != "/all.json" {
		t.Errorf("path = %q, want /all.json", gotPath)
	}
}

func TestHTTPErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).ByCategory(context.Background(), "nonsense")
	if !errors.IsCode(err, errors.CodeUpstreamHTTP) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamHTTP)
	}
}

func TestFormatErrorOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamFormat) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamFormat)
	}
}

func TestFormatErrorOnMissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"origin":"无内容","author":"某人"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamFormat) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamFormat)
	}
}

func TestRandomTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"content":"late"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 50*time.Millisecond).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamTimeout) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamTimeout)
	}
}
