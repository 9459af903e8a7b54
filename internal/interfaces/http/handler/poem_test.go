package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"poem-tab-api/internal/application/poem"
	"poem-tab-api/internal/domain/entity"
)

func newPoemRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := poem.NewService(newFakePrefs(), fakeChinese{}, fakeEnglish{}, nil)
	r := gin.New()

	poemHandler := NewPoemHandler(svc)
	stateHandler := NewStateHandler(svc)
	r.GET("/v1/poems/random", poemHandler.Random)
	r.GET("/v1/poems/category/*category", poemHandler.ByCategory)
	r.GET("/v1/poems/index/:index", poemHandler.ByIndex)
	r.GET("/v1/state/index", stateHandler.GetIndex)
	r.PUT("/v1/state/index", stateHandler.SetIndex)
	r.GET("/v1/state/language", stateHandler.GetLanguage)
	r.PUT("/v1/state/language", stateHandler.SetLanguage)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestPoemRandomRoute(t *testing.T) {
	r := newPoemRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/v1/poems/random", "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestPoemIndexRoute(t *testing.T) {
	r := newPoemRouter(t)

	want, _ := entity.SampleAt(1)
	w, env := doJSON(t, r, http.MethodGet, "/v1/poems/index/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var poem struct {
		Title       string `json:"title"`
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(env.Data, &poem); err != nil {
		t.Fatal(err)
	}
	if poem.Title != want.Title {
		t.Errorf("title = %q, want %q", poem.Title, want.Title)
	}
	if poem.Translation == "" {
		t.Error("local samples should carry a translation")
	}
}

func TestPoemIndexRouteRejectsBadInput(t *testing.T) {
	r := newPoemRouter(t)

	cases := []struct {
		path string
		code string
	}{
		{"/v1/poems/index/abc", "1001"},
		{"/v1/poems/index/999", "3101"},
		{"/v1/poems/index/-2", "3101"},
	}
	for _, c := range cases {
		w, env := doJSON(t, r, http.MethodGet, c.path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.path, w.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != c.code {
			t.Errorf("%s: error = %+v, want code %s", c.path, env.Error, c.code)
		}
	}
}

func TestPoemCategoryRoute(t *testing.T) {
	r := newPoemRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/v1/poems/category/shanshui", "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var poem struct {
		Language string `json:"language"`
	}
	if err := json.Unmarshal(env.Data, &poem); err != nil {
		t.Fatal(err)
	}
	if poem.Language != "chinese" {
		t.Errorf("language = %q, want chinese", poem.Language)
	}
}

func TestStateIndexRoute(t *testing.T) {
	r := newPoemRouter(t)

	if w, _ := doJSON(t, r, http.MethodPut, "/v1/state/index", `{"index":3}`); w.Code != http.StatusOK {
		t.Fatalf("put status = %d", w.Code)
	}

	_, env := doJSON(t, r, http.MethodGet, "/v1/state/index", "")
	var state struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(env.Data, &state); err != nil {
		t.Fatal(err)
	}
	if state.Index != 3 {
		t.Errorf("index = %d, want 3", state.Index)
	}
}

func TestStateIndexRouteRejectsMissingBody(t *testing.T) {
	r := newPoemRouter(t)

	w, _ := doJSON(t, r, http.MethodPut, "/v1/state/index", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestStateLanguageRoute(t *testing.T) {
	r := newPoemRouter(t)

	// 缺省语言为中文
	_, env := doJSON(t, r, http.MethodGet, "/v1/state/language", "")
	var state struct {
		Language string `json:"language"`
	}
	if err := json.Unmarshal(env.Data, &state); err != nil {
		t.Fatal(err)
	}
	if state.Language != "chinese" {
		t.Errorf("default language = %q, want chinese", state.Language)
	}

	if w, _ := doJSON(t, r, http.MethodPut, "/v1/state/language", `{"language":"english"}`); w.Code != http.StatusOK {
		t.Fatalf("put status = %d", w.Code)
	}

	_, env = doJSON(t, r, http.MethodGet, "/v1/state/language", "")
	if err := json.Unmarshal(env.Data, &state); err != nil {
		t.Fatal(err)
	}
	if state.Language != "english" {
		t.Errorf("language = %q, want english", state.Language)
	}
}
