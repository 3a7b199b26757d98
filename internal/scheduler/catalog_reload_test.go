package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
)

const twoArticles = `---
articles:
  - source: { name: BBC News }
    title: AI Breakthrough
    url: https://bbc.com/news/ai
    age: 30m
    categories: [technology]
  - source: { name: Reuters }
    title: Markets Recover
    url: https://reuters.com/markets
    age: 1h
    categories: [business]
`

const oneArticle = `---
articles:
  - source: { name: ESPN }
    title: Championship Final
    url: https://espn.com/final
    age: 2h
    categories: [sports]
`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
}

func TestCatalogReloader_Reload(t *testing.T) {
	log := logger.New("error", false)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, twoArticles)

	idx := index.NewArticleIndex()
	cr := NewCatalogReloader(path, idx, log, time.Hour, make(chan struct{}))

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if idx.Count() != 2 {
		t.Errorf("Expected 2 articles, got %d", idx.Count())
	}
	if got := idx.ByCategory(domain.CategoryBusiness); len(got) != 1 || got[0].Title != "Markets Recover" {
		t.Errorf("Unexpected business articles: %+v", got)
	}
}

func TestCatalogReloader_EmbeddedDefault(t *testing.T) {
	idx := index.NewArticleIndex()
	cr := NewCatalogReloader("", idx, logger.NewNop(), 0, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if idx.Count() != 6 {
		t.Errorf("Expected 6 default articles, got %d", idx.Count())
	}
}

func TestCatalogReloader_FailedReloadKeepsIndex(t *testing.T) {
	log := logger.New("error", false)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, twoArticles)

	idx := index.NewArticleIndex()
	cr := NewCatalogReloader(path, idx, log, time.Hour, make(chan struct{}))
	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	// Broken YAML
	writeCatalog(t, path, "articles: [")
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Expected reload of invalid YAML to fail")
	}

	// No valid entries
	writeCatalog(t, path, "articles:\n  - title: no url\n")
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Expected reload without valid articles to fail")
	}

	if idx.Count() != 2 {
		t.Errorf("Failed reload should keep previous articles, got %d", idx.Count())
	}
}

func TestCatalogReloader_StartFailsOnInitialError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	cr := NewCatalogReloader(path, index.NewArticleIndex(), logger.NewNop(), time.Hour, nil)

	if err := cr.Start(context.Background()); err == nil {
		t.Fatal("Expected Start to fail when the catalog is missing")
	}
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, twoArticles)

	idx := index.NewArticleIndex()
	trigger := make(chan struct{}, 1)
	cr := NewCatalogReloader(path, idx, logger.NewNop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cr.Stop()

	if idx.Count() != 2 {
		t.Fatalf("Expected 2 articles after start, got %d", idx.Count())
	}

	writeCatalog(t, path, oneArticle)
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for idx.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("Manual reload not applied, still %d articles", idx.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, ok := idx.Get(domain.NewArticleID("https://espn.com/final")); !ok {
		t.Error("Expected reloaded article to be indexed")
	}
}

func TestCatalogReloader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := index.NewArticleIndex()
	cr := NewCatalogReloader("", idx, logger.NewNop(), 0, nil)
	if err := cr.Reload(ctx); err == nil {
		t.Error("Expected Reload to fail with a cancelled context")
	}
	if idx.Loaded() {
		t.Error("Index should not be loaded after a cancelled reload")
	}
}
