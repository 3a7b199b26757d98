package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/metrics"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/catalog"
)

// CatalogReloader handles periodic reloading of the article catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	index         *index.ArticleIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader.
// An empty catalogFile reloads the embedded default catalog.
// interval <= 0 disables periodic reloads, manual triggers still work.
func NewCatalogReloader(
	catalogFile string,
	idx *index.ArticleIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		mapper:        catalog.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	go func() {
		var tick <-chan time.Time
		if cr.interval > 0 {
			ticker := time.NewTicker(cr.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog, keeping previous articles",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog, keeping previous articles",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the catalog file and swaps it into the index.
// On error the index keeps its previous content.
func (cr *CatalogReloader) Reload(ctx context.Context) (err error) {
	defer func() {
		metrics.RecordCatalogReload(cr.index.Count(), err)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	source := cr.loader.Path()
	if source == "" {
		source = "embedded"
	}
	cr.logger.Info("reloading catalog", logger.String("path", source))

	file, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	cat, err := cr.mapper.Map(file)
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	if cat.Skipped > 0 {
		cr.logger.Warn("skipped invalid catalog entries",
			logger.Int("skipped", cat.Skipped))
	}

	catalog.Apply(cr.index, cat)

	cr.logger.Info("catalog loaded",
		logger.Int("count", len(cat.Entries)))

	return nil
}
