// Package rss is an article source built from a set of RSS/Atom feeds.
package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
	"github.com/MrSnakeDoc/newsdesk/internal/version"
)

const (
	sourceName = "rss"

	// DefaultConcurrency bounds parallel feed downloads
	DefaultConcurrency = 4
)

// Config holds the source settings
type Config struct {
	Feeds       []Feed
	Concurrency int
	MaxItems    int // per feed, 0 keeps every item
	HTTPClient  *http.Client
	Logger      logger.Logger
}

// Source implements sources.Source over RSS/Atom feeds
type Source struct {
	feeds       []Feed
	concurrency int
	maxItems    int
	client      *http.Client
	logger      logger.Logger
}

var _ sources.Source = (*Source)(nil)

// New creates a new RSS source
func New(cfg Config) *Source {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &Source{
		feeds:       cfg.Feeds,
		concurrency: cfg.Concurrency,
		maxItems:    cfg.MaxItems,
		client:      cfg.HTTPClient,
		logger:      cfg.Logger.With(logger.String("source", sourceName)),
	}
}

// FetchByCategory merges the items of every feed serving category, newest first
func (s *Source) FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error) {
	feeds := forCategory(s.feeds, category)
	if len(feeds) == 0 {
		return domain.NewEnvelope(nil), nil
	}

	articles, err := s.collect(ctx, feeds)
	if err != nil {
		return domain.Envelope{}, domain.NewSourceError(sourceName, "fetch", err)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return domain.NewEnvelope(articles), nil
}

// Search ranks the items of every feed against query, best match first
func (s *Source) Search(ctx context.Context, query string) (domain.Envelope, error) {
	q, err := sources.NormalizeQuery(query)
	if err != nil {
		return domain.Envelope{}, err
	}

	if len(s.feeds) == 0 {
		return domain.NewEnvelope(nil), nil
	}

	articles, err := s.collect(ctx, s.feeds)
	if err != nil {
		return domain.Envelope{}, domain.NewSourceError(sourceName, "search", err)
	}

	ranked := domain.RankArticles(domain.ParseQuery(q), articles)
	out := make([]domain.Article, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Article)
	}
	return domain.NewEnvelope(out), nil
}

// collect downloads feeds concurrently and merges their items, deduplicated by URL.
// It fails only when every feed fails.
func (s *Source) collect(ctx context.Context, feeds []Feed) ([]domain.Article, error) {
	results := make([][]domain.Article, len(feeds))
	errs := make([]error, len(feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, feed := range feeds {
		i, feed := i, feed
		g.Go(func() error {
			items, err := s.fetchFeed(gctx, feed)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.logger.Warn("failed to fetch feed",
					logger.String("url", feed.URL),
					logger.Error(err))
				errs[i] = err
				return nil
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(feeds) {
		return nil, fmt.Errorf("all %d feeds failed: %w", failed, errors.Join(errs...))
	}

	seen := make(map[string]bool)
	var merged []domain.Article
	for _, items := range results {
		for _, a := range items {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			merged = append(merged, a)
		}
	}
	return merged, nil
}

// fetchFeed downloads and maps a single feed
func (s *Source) fetchFeed(ctx context.Context, feed Feed) ([]domain.Article, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = version.UserAgent()
	fp.Client = s.client

	parsed, err := fp.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}

	name := feed.Name
	if name == "" {
		name = strings.TrimSpace(parsed.Title)
	}

	items := parsed.Items
	if s.maxItems > 0 && len(items) > s.maxItems {
		items = items[:s.maxItems]
	}

	out := make([]domain.Article, 0, len(items))
	for _, it := range items {
		a := mapItem(it, name)
		if a.URL == "" || a.Title == "" {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// mapItem converts a feed item to a domain article
func mapItem(it *gofeed.Item, source string) domain.Article {
	description, descImage := flatten(it.Description)
	content, contentImage := flatten(it.Content)
	if content == "" {
		content = description
	}

	a := domain.Article{
		URL:         strings.TrimSpace(it.Link),
		Source:      domain.SourceRef{Name: source},
		Title:       collapseSpaces(it.Title),
		Description: description,
		Content:     content,
		ImageURL:    itemImage(it, contentImage, descImage),
	}

	if len(it.Authors) > 0 && it.Authors[0] != nil {
		a.Author = it.Authors[0].Name
	}

	switch {
	case it.PublishedParsed != nil:
		a.PublishedAt = *it.PublishedParsed
	case it.UpdatedParsed != nil:
		a.PublishedAt = *it.UpdatedParsed
	}

	if a.URL != "" {
		a.ID = domain.NewArticleID(a.URL)
	}
	return a
}

// itemImage picks the item image, then an image enclosure, then the first inline <img>
func itemImage(it *gofeed.Item, inline ...string) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	for _, src := range inline {
		if src != "" {
			return src
		}
	}
	return ""
}
