package app

import (
	"fmt"

	"github.com/MrSnakeDoc/newsdesk/internal/config"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/catalog"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/newsapi"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/rss"
)

// NewSource builds the article source selected by cfg.Source.
// Every source drops malformed articles and records call metrics.
func NewSource(cfg *config.Config, log logger.Logger) (sources.Source, error) {
	var src sources.Source

	switch cfg.Source {
	case "catalog":
		idx, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		log.Info("catalog source ready", logger.Int("articles", idx.Count()))
		src = catalog.New(idx)

	case "newsapi":
		src = newsapi.New(newsapi.Config{
			BaseURL:  cfg.NewsAPIBaseURL,
			APIKey:   cfg.NewsAPIKey,
			Country:  cfg.NewsAPICountry,
			PageSize: cfg.NewsAPIPageSize,
			Rate:     cfg.NewsAPIRate,
			Logger:   log,
		})
		log.Info("newsapi source ready", logger.String("base_url", cfg.NewsAPIBaseURL))

	case "rss":
		feeds, err := rss.LoadFeeds(cfg.RSSFeedsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load feeds: %w", err)
		}
		src = rss.New(rss.Config{
			Feeds:       feeds,
			Concurrency: cfg.RSSConcurrency,
			MaxItems:    cfg.RSSMaxItems,
			Logger:      log,
		})
		log.Info("rss source ready", logger.Int("feeds", len(feeds)))

	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}

	return sources.Instrument(sources.Validate(src, log), cfg.Source), nil
}
