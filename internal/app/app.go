// Package app wires the newsdesk binaries: the catalog HTTP server and the
// article source used by the terminal client.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/config"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver"
	"github.com/MrSnakeDoc/newsdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/newsdesk/internal/index"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/scheduler"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
	"github.com/MrSnakeDoc/newsdesk/internal/sources/catalog"
	"github.com/MrSnakeDoc/newsdesk/internal/version"
)

// App is newsdesk-server: the catalog served over a NewsAPI-compatible API.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	index    *index.ArticleIndex
	reloader *scheduler.CatalogReloader
}

func New() *App {
	cfg := config.Load()
	return NewWithConfig(cfg, logger.New(cfg.LogLevel, cfg.PrettyLog))
}

// NewWithConfig builds the server from an already loaded configuration.
func NewWithConfig(cfg *config.Config, loggerClient logger.Logger) *App {
	// Filled by the reloader on Start
	idx := index.NewArticleIndex()

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		idx,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateLimitRPS:  cfg.RateLimitRPS,
		RateBurst:     cfg.RateBurst,
		CatalogFile:   cfg.CatalogFile,
		Index:         idx,
		Source:        sources.Instrument(catalog.New(idx), "catalog"),
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		index:    idx,
		reloader: reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting newsdesk-server v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	// Loads the catalog before serving, so /readyz is green on the first request
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Int("articles", a.index.Count()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ newsdesk-server stopped cleanly")
	return nil
}
