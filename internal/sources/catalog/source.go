// Package catalog serves articles from a static YAML catalog held in memory.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

const sourceName = "catalog"

// Source answers category and search requests from an ArticleIndex
type Source struct {
	index *index.ArticleIndex
	now   func() time.Time
}

// New creates a catalog source over idx
func New(idx *index.ArticleIndex) *Source {
	return &Source{index: idx, now: time.Now}
}

// Load reads, maps and indexes the catalog at path ("" for the embedded one)
func Load(path string) (*index.ArticleIndex, error) {
	file, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	cat, err := NewMapper().Map(file)
	if err != nil {
		return nil, fmt.Errorf("failed to map catalog: %w", err)
	}

	idx := index.NewArticleIndex()
	Apply(idx, cat)
	return idx, nil
}

// Apply replaces the content of idx with cat
func Apply(idx *index.ArticleIndex, cat Catalog) {
	idx.UpdateArticles(cat.Entries)
	idx.SetSearchTemplate(cat.SearchTemplate)
}

// FetchByCategory returns the articles tagged with category, every article for general
func (s *Source) FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return domain.Envelope{}, domain.NewSourceError(sourceName, "fetch", err)
	}
	if !category.IsGeneral() && !category.Valid() {
		return domain.Envelope{}, domain.NewSourceError(sourceName, "fetch",
			fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category))
	}

	return domain.NewEnvelope(s.index.ByCategory(category)), nil
}

// Search returns a single synthesized article mentioning the query
func (s *Source) Search(ctx context.Context, query string) (domain.Envelope, error) {
	q, err := sources.NormalizeQuery(query)
	if err != nil {
		return domain.Envelope{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Envelope{}, domain.NewSourceError(sourceName, "search", err)
	}

	article := Synthesize(s.index.SearchTemplate(), q, s.now())
	return domain.NewEnvelope([]domain.Article{article}), nil
}
