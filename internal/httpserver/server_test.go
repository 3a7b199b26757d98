package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/catalog"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/newsapi"
)

func newTestDeps(t *testing.T, loaded bool) deps.Deps {
	t.Helper()

	idx := index.NewArticleIndex()
	if loaded {
		var err error
		idx, err = catalog.Load("")
		require.NoError(t, err)
	}

	return deps.Deps{
		Logger:        logger.NewNop(),
		StartTime:     time.Now().Add(-time.Minute),
		Version:       "test",
		TimeNow:       time.Now,
		Index:         idx,
		Source:        catalog.New(idx),
		ReloadTrigger: make(chan struct{}, 1),
	}
}

func serve(t *testing.T, d deps.Deps, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(d.Logger, d)
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) newsapi.Response {
	t.Helper()
	var resp newsapi.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestTopHeadlines(t *testing.T) {
	d := newTestDeps(t, true)

	tests := []struct {
		name      string
		target    string
		wantCount int
	}{
		{"no category is general", "/v2/top-headlines", 6},
		{"general", "/v2/top-headlines?category=general", 6},
		{"technology", "/v2/top-headlines?category=technology", 1},
		{"business", "/v2/top-headlines?category=business", 2},
		{"mixed case", "/v2/top-headlines?category=Sports", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, d, http.MethodGet, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode(t, rec)
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.wantCount, resp.TotalResults)
			assert.Len(t, resp.Articles, tt.wantCount)
		})
	}
}

func TestTopHeadlinesInvalidParams(t *testing.T) {
	d := newTestDeps(t, true)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown category", "/v2/top-headlines?category=weather"},
		{"page size zero", "/v2/top-headlines?pageSize=0"},
		{"page size too big", "/v2/top-headlines?pageSize=101"},
		{"page size not a number", "/v2/top-headlines?pageSize=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, d, http.MethodGet, tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode(t, rec)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, newsapi.CodeParameterInvalid, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestTopHeadlinesPageSize(t *testing.T) {
	d := newTestDeps(t, true)

	rec := serve(t, d, http.MethodGet, "/v2/top-headlines?pageSize=2")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.Len(t, resp.Articles, 2)
	assert.Equal(t, 6, resp.TotalResults, "totalResults reports the full result")
}

func TestEverything(t *testing.T) {
	d := newTestDeps(t, true)

	rec := serve(t, d, http.MethodGet, "/v2/everything?q=climate")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Search results for: climate", resp.Articles[0].Title)
	assert.Equal(t, "https://example.com/search?q=climate", resp.Articles[0].URL)
}

func TestEverythingMissingQuery(t *testing.T) {
	d := newTestDeps(t, true)

	for _, target := range []string{"/v2/everything", "/v2/everything?q=%20%20"} {
		rec := serve(t, d, http.MethodGet, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		resp := decode(t, rec)
		assert.Equal(t, newsapi.CodeParametersMissing, resp.Code, target)
	}
}

func TestArticleByID(t *testing.T) {
	d := newTestDeps(t, true)

	id := domain.NewArticleID("https://bbc.com/news/technology")
	rec := serve(t, d, http.MethodGet, "/v2/articles/"+id)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "https://bbc.com/news/technology", resp.Articles[0].URL)

	rec = serve(t, d, http.MethodGet, "/v2/articles/"+domain.NewArticleID("https://example.com/missing"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, newsapi.CodeArticleNotFound, decode(t, rec).Code)
}

func TestSourceFailure(t *testing.T) {
	d := newTestDeps(t, true)
	d.Source = failingSource{}

	rec := serve(t, d, http.MethodGet, "/v2/top-headlines")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, newsapi.CodeUnexpectedError, decode(t, rec).Code)
}

func TestRateLimit(t *testing.T) {
	d := newTestDeps(t, true)
	d.RateLimitRPS = 0.001
	d.RateBurst = 2
	router := NewRouter(d.Logger, d)

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v2/top-headlines", nil)
		req.RemoteAddr = "192.0.2.10:4321"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, newsapi.CodeRateLimited, decode(t, rec).Code)
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// Other clients keep their own bucket
	req := httptest.NewRequest(http.MethodGet, "/v2/top-headlines", nil)
	req.RemoteAddr = "192.0.2.11:4321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforceHost(t *testing.T) {
	d := newTestDeps(t, true)
	d.AllowedHosts = []string{"news.example.com", "*.internal.example.com"}
	router := NewRouter(d.Logger, d)

	tests := []struct {
		host string
		want int
	}{
		{"news.example.com", http.StatusOK},
		{"news.example.com:8080", http.StatusOK},
		{"api.internal.example.com", http.StatusOK},
		{"evil.example.org", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v2/top-headlines", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, tt.host)
	}
}

func TestProbes(t *testing.T) {
	empty := newTestDeps(t, false)
	assert.Equal(t, http.StatusOK, serve(t, empty, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(t, empty, http.MethodGet, "/readyz").Code)

	d := newTestDeps(t, true)
	rec := serve(t, d, http.MethodGet, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready":true`)

	rec = serve(t, d, http.MethodGet, "/healthz")
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestStatus(t *testing.T) {
	d := newTestDeps(t, true)

	rec := serve(t, d, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Mode    string `json:"mode"`
		Catalog struct {
			OK         bool           `json:"ok"`
			Source     string         `json:"source"`
			Articles   int            `json:"articles"`
			Categories map[string]int `json:"categories"`
			LastReload string         `json:"last_reload"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "serving", body.Mode)
	assert.True(t, body.Catalog.OK)
	assert.Equal(t, "embedded", body.Catalog.Source)
	assert.Equal(t, 6, body.Catalog.Articles)
	assert.Equal(t, 6, body.Catalog.Categories["general"])
	assert.Equal(t, 2, body.Catalog.Categories["business"])
	assert.NotEqual(t, "never", body.Catalog.LastReload)
}

func TestReload(t *testing.T) {
	d := newTestDeps(t, true)

	rec := serve(t, d, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// Trigger already pending
	rec = serve(t, d, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = serve(t, d, http.MethodGet, "/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRestrictedRoutesCheckCIDR(t *testing.T) {
	d := newTestDeps(t, true)
	d.AllowedCIDRS = []string{"10.0.0.0/8"}
	router := NewRouter(d.Logger, d)

	for _, target := range []string{"/reload", "/metrics"} {
		method := http.MethodGet
		if target == "/reload" {
			method = http.MethodPost
		}

		req := httptest.NewRequest(method, target, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)

		req = httptest.NewRequest(method, target, nil)
		req.RemoteAddr = "10.1.2.3:1234"
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Less(t, rec.Code, 400, target)
	}
}

func TestMetricsExposeRequests(t *testing.T) {
	d := newTestDeps(t, true)
	router := NewRouter(d.Logger, d)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v2/top-headlines", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newsdesk_http_requests_total{method="GET",route="/v2/top-headlines",status="200"}`)
}

// TestNewsAPIClientRoundTrip points the NewsAPI client at the server and
// checks both ends agree on the wire format.
func TestNewsAPIClientRoundTrip(t *testing.T) {
	d := newTestDeps(t, true)
	srv := httptest.NewServer(NewRouter(d.Logger, d))
	defer srv.Close()

	client := newsapi.New(newsapi.Config{BaseURL: srv.URL + "/v2"})
	ctx := context.Background()

	env, err := client.FetchByCategory(ctx, domain.CategoryTechnology)
	require.NoError(t, err)
	require.Len(t, env.Articles, 1)

	want, err := d.Source.FetchByCategory(ctx, domain.CategoryTechnology)
	require.NoError(t, err)
	assert.Equal(t, want.Articles[0].Title, env.Articles[0].Title)
	assert.Equal(t, want.Articles[0].URL, env.Articles[0].URL)
	assert.WithinDuration(t, want.Articles[0].PublishedAt, env.Articles[0].PublishedAt, time.Second)

	env, err = client.Search(ctx, "climate")
	require.NoError(t, err)
	require.Len(t, env.Articles, 1)
	assert.Equal(t, "Search results for: climate", env.Articles[0].Title)
}

type failingSource struct{}

func (failingSource) FetchByCategory(context.Context, domain.Category) (domain.Envelope, error) {
	return domain.Envelope{}, domain.NewSourceError("catalog", "fetch", context.DeadlineExceeded)
}

func (failingSource) Search(context.Context, string) (domain.Envelope, error) {
	return domain.Envelope{}, domain.NewSourceError("catalog", "search", context.DeadlineExceeded)
}
