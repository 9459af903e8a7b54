package poetrydb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"poem-tab-api/internal/config"
	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.PoetryDBConfig{
		BaseURL: baseURL,
		Fields:  "title,author,lines",
	})
}

func TestRandomMapsFirstElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random/1" {
			t.Errorf("path = %q, want /random/1", r.URL.Path)
		}
		w.Write([]byte(`[{"title":"Hope","author":"Emily Dickinson","lines":["Hope is the thing with feathers","That perches in the soul"]}]`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL).Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}

	if poem.Title != "Hope" {
		t.Errorf("Title = %q, want Hope", poem.Title)
	}
	if poem.Author != "Emily Dickinson" {
		t.Errorf("Author = %q, want Emily Dickinson", poem.Author)
	}
	want := "Hope is the thing with feathers\nThat perches in the soul"
	if poem.Content != want {
		t.Errorf("Content = %q, want %q", poem.Content, want)
	}
	if poem.Language != entity.LanguageEnglish {
		t.Errorf("Language = %q, want english", poem.Language)
	}
	if poem.Source != SourceName {
		t.Errorf("Source = %q, want %q", poem.Source, SourceName)
	}
}

func TestRandomFillsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lines":["a lone line"]}]`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL).Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error: %v", err)
	}
	if poem.Title != entity.UntitledEn {
		t.Errorf("Title = %q, want %q", poem.Title, entity.UntitledEn)
	}
	if poem.Author != entity.UnknownEn {
		t.Errorf("Author = %q, want %q", poem.Author, entity.UnknownEn)
	}
}

func TestRandomEmptyArrayIsFormatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamFormat) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamFormat)
	}
}

func TestRandomNonArrayIsFormatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":404,"reason":"Not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamFormat) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamFormat)
	}
}

func TestByAuthorEscapesName(t *testing.T) {
	var gotPath string
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[{"title":"A","author":"Emily Dickinson","lines":["one"]},{"title":"B","author":"Emily Dickinson","lines":["two"]}]`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL).ByAuthor(context.Background(), "Emily Dickinson")
	if err != nil {
		t.Fatalf("ByAuthor() error: %v", err)
	}

	want := "/author/Emily%20Dickinson/title,author,lines"
	if gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	// 本地随机选取，不发起第二次请求
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
	if poem.Title != "A" && poem.Title != "B" {
		t.Errorf("Title = %q, want one of the result set", poem.Title)
	}
}

func TestByAuthorEmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ByAuthor(context.Background(), "Nobody")
	if !errors.IsCode(err, errors.CodePoemNotFound) {
		t.Fatalf("error = %v, want code %s", err, errors.CodePoemNotFound)
	}
}

func TestByAuthorObjectResponseIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":404,"reason":"Not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ByAuthor(context.Background(), "Nobody")
	if !errors.IsCode(err, errors.CodePoemNotFound) {
		t.Fatalf("error = %v, want code %s", err, errors.CodePoemNotFound)
	}
}

func TestByLineCount(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"title":"Quatrain","author":"Anon","lines":["1","2","3","4"]}]`))
	}))
	defer srv.Close()

	poem, err := newTestClient(srv.URL).ByLineCount(context.Background(), 4)
	if err != nil {
		t.Fatalf("ByLineCount() error: %v", err)
	}
	if gotPath != "/linecount/4/title,author,lines" {
		t.Errorf("path = %q", gotPath)
	}
	if poem.Content != "1\n2\n3\n4" {
		t.Errorf("Content = %q", poem.Content)
	}
}

func TestByLineCountEmptyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ByLineCount(context.Background(), 99)
	if !errors.IsCode(err, errors.CodePoemNotFound) {
		t.Fatalf("error = %v, want code %s", err, errors.CodePoemNotFound)
	}
}

func TestHTTPErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamHTTP) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamHTTP)
	}
}

func TestPoemWithNoLinesIsFormatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"Empty","author":"Anon"}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Random(context.Background())
	if !errors.IsCode(err, errors.CodeUpstreamFormat) {
		t.Fatalf("error = %v, want code %s", err, errors.CodeUpstreamFormat)
	}
}
