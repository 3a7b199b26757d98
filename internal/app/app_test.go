package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/newsdesk/internal/config"
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/catalog"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Sports Desk</title>
  <item>
    <title>Championship Final Set</title>
    <link>https://sports.example.com/final</link>
    <description>Two teams advance.</description>
    <pubDate>Sun, 01 Mar 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title></title>
    <link>https://sports.example.com/untitled</link>
  </item>
</channel>
</rss>`

func TestNewSourceCatalog(t *testing.T) {
	src, err := NewSource(&config.Config{Source: "catalog"}, logger.NewNop())
	require.NoError(t, err)

	env, err := src.FetchByCategory(context.Background(), domain.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, env.Articles, 6)
	assert.Equal(t, 6, env.TotalCount)
}

func TestNewSourceCatalogMissingFile(t *testing.T) {
	cfg := &config.Config{
		Source:      "catalog",
		CatalogFile: filepath.Join(t.TempDir(), "missing.yaml"),
	}
	_, err := NewSource(cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewSourceNewsAPI(t *testing.T) {
	idx, err := catalog.Load("")
	require.NoError(t, err)

	d := deps.Deps{
		Logger:        logger.NewNop(),
		StartTime:     time.Now(),
		Index:         idx,
		Source:        catalog.New(idx),
		ReloadTrigger: make(chan struct{}, 1),
	}
	srv := httptest.NewServer(httpserver.NewRouter(d.Logger, d))
	defer srv.Close()

	cfg := &config.Config{
		Source:          "newsapi",
		NewsAPIBaseURL:  srv.URL + "/v2",
		NewsAPIPageSize: 3,
	}
	src, err := NewSource(cfg, logger.NewNop())
	require.NoError(t, err)

	env, err := src.FetchByCategory(context.Background(), domain.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, env.Articles, 3)
	assert.Equal(t, 6, env.TotalCount)

	env, err = src.Search(context.Background(), "climate")
	require.NoError(t, err)
	require.Len(t, env.Articles, 1)
	assert.Equal(t, "Search results for: climate", env.Articles[0].Title)
}

func TestNewSourceRSS(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	defer feedSrv.Close()

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := fmt.Sprintf("feeds:\n  - url: %s/sports.xml\n    category: sports\n", feedSrv.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := NewSource(&config.Config{Source: "rss", RSSFeedsFile: path}, logger.NewNop())
	require.NoError(t, err)

	env, err := src.FetchByCategory(context.Background(), domain.CategorySports)
	require.NoError(t, err)
	require.Len(t, env.Articles, 1, "untitled item is dropped")
	assert.Equal(t, "Championship Final Set", env.Articles[0].Title)
	assert.NotEmpty(t, env.Articles[0].ID)
}

func TestNewSourceRSSMissingFeeds(t *testing.T) {
	cfg := &config.Config{Source: "rss", RSSFeedsFile: filepath.Join(t.TempDir(), "none.yaml")}
	_, err := NewSource(cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewSourceUnknown(t *testing.T) {
	_, err := NewSource(&config.Config{Source: "carrier-pigeon"}, logger.NewNop())
	assert.Error(t, err)
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestAppServesUntilCancelled(t *testing.T) {
	addr := freePort(t)
	cfg := &config.Config{
		ListenPort:      addr,
		ShutdownTimeout: 2 * time.Second,
		ReloadInterval:  time.Hour,
	}
	a := NewWithConfig(cfg, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	var res *http.Response
	require.Eventually(t, func() bool {
		var err error
		res, err = http.Get("http://" + addr + "/readyz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err := http.Get("http://" + addr + "/v2/top-headlines?category=health")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestAppFailsOnBadCatalog(t *testing.T) {
	cfg := &config.Config{
		ListenPort:      freePort(t),
		ShutdownTimeout: time.Second,
		CatalogFile:     filepath.Join(t.TempDir(), "missing.yaml"),
	}
	a := NewWithConfig(cfg, logger.NewNop())

	err := a.run(context.Background())
	assert.ErrorContains(t, err, "failed to start catalog reloader")
}
