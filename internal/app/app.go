// Package app initializes and holds the long-lived services of the scout,
// acting as the dependency wiring point.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chemscout/msds-scout/internal/api"
	"github.com/chemscout/msds-scout/internal/archive"
	"github.com/chemscout/msds-scout/internal/config"
	"github.com/chemscout/msds-scout/internal/extract"
	"github.com/chemscout/msds-scout/internal/fetch"
	"github.com/chemscout/msds-scout/internal/logging"
	"github.com/chemscout/msds-scout/internal/scout"
	"github.com/chemscout/msds-scout/internal/search"
	"github.com/chemscout/msds-scout/internal/storage"
)

// App holds the shared, long-lived services for the scout service. It is
// initialized once at startup and torn down via Close.
type App struct {
	Logger *zap.Logger
	Server *api.Server

	archive archive.Provider
}

// New builds every service from configuration. It fails fast if any
// critical service cannot be initialized.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.Info("initializing scout services")

	store, err := storage.New(storage.Config{
		VerifiedDir:   cfg.Storage.VerifiedDir,
		UnverifiedDir: cfg.Storage.UnverifiedDir,
	}, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	limiter := fetch.NewLimiter(cfg.Crawler.RateLimitPerDomain, 1)
	fetcher := fetch.New(fetch.Config{
		UserAgent:     cfg.Crawler.UserAgent,
		Timeout:       cfg.Crawler.RequestTimeout,
		UnverifiedDir: store.UnverifiedDir(),
	}, limiter, logger.Named("fetch"))

	var entryArchive archive.Provider = archive.NoOp{}
	if cfg.DB.DSN != "" {
		logger.Info("connecting report-entry archive")
		pg, err := archive.NewPostgres(ctx, archive.PostgresConfig{
			DSN:      cfg.DB.DSN,
			Table:    cfg.DB.Table,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("init archive: %w", err)
		}
		entryArchive = pg
	} else {
		logger.Info("no archive DSN configured; report entries are file-only")
	}

	controller := scout.NewController(
		fetcher,
		extract.NewLinkParser(),
		extract.NewPDFText(cfg.Crawler.PDFMaxPages),
		store,
		scout.DefaultDenylist(),
		scout.NewVerifier(),
		logger.Named("crawler"),
	)

	searcher := search.NewDuckDuckGo(search.Config{
		BaseURL:   cfg.Search.BaseURL,
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.Crawler.RequestTimeout,
	}, logger.Named("search"))

	orchestrator := scout.NewOrchestrator(searcher, controller, entryArchive, logger.Named("scout"), scout.OrchestratorConfig{
		MaxSearchResults: cfg.Crawler.MaxSearchResults,
		Depth:            cfg.Crawler.Depth,
		MaxURLVisits:     cfg.Crawler.MaxURLVisits,
		MaxDomainVisits:  cfg.Crawler.MaxDomainVisits,
		DownloadLimit:    cfg.Crawler.DownloadLimit,
		LogsDir:          cfg.Storage.LogsDir,
	})

	return &App{
		Logger:  logger,
		Server:  api.NewServer(orchestrator, logger.Named("api")),
		archive: entryArchive,
	}, nil
}

// Close shuts down the app's services.
func (a *App) Close() {
	if a.archive != nil {
		a.archive.Close()
	}
	if a.Logger != nil {
		// Sync can fail on stderr; nothing useful to do with it here.
		_ = a.Logger.Sync()
	}
}
