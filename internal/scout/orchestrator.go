package scout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoIdentifier is returned when a scout is requested without a CAS number
// or substance name. It is the only condition surfaced to the caller as a
// rejected request; every failure during the crawl itself is absorbed.
var ErrNoIdentifier = errors.New("no identifier supplied")

// OrchestratorConfig carries the per-run resource limits.
type OrchestratorConfig struct {
	MaxSearchResults int
	Depth            int
	MaxURLVisits     int
	MaxDomainVisits  int
	DownloadLimit    int
	LogsDir          string
}

func (c OrchestratorConfig) withDefaults() OrchestratorConfig {
	if c.MaxSearchResults <= 0 {
		c.MaxSearchResults = 10
	}
	if c.Depth <= 0 {
		c.Depth = DefaultDepth
	}
	if c.MaxURLVisits <= 0 {
		c.MaxURLVisits = DefaultMaxURLVisits
	}
	if c.MaxDomainVisits <= 0 {
		c.MaxDomainVisits = DefaultMaxDomainVisits
	}
	if c.DownloadLimit <= 0 {
		c.DownloadLimit = DefaultDownloadLimit
	}
	return c
}

// Orchestrator is the top-level entry point: it issues the search query,
// seeds one budgeted sub-crawl per search result, and aggregates everything
// into one report.
type Orchestrator struct {
	searcher Searcher
	crawler  Crawler
	archive  EntrySink
	logger   *zap.Logger
	cfg      OrchestratorConfig
}

// NewOrchestrator wires the scout entry point. archive may be nil when no
// durable archival is configured.
func NewOrchestrator(searcher Searcher, crawler Crawler, archive EntrySink, logger *zap.Logger, cfg OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		crawler:  crawler,
		archive:  archive,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}
}

// Scout locates and verifies MSDS documents for the identifier. Each search
// result starts an independent sub-crawl with a fresh visit ledger and
// download budget; revisits and download allowance are deliberately NOT
// shared across seeds. A crawl run always completes and returns a (possibly
// empty) report; ErrNoIdentifier is the only rejected input.
func (o *Orchestrator) Scout(ctx context.Context, id Identifier) (*Report, error) {
	if id.IsZero() {
		return nil, ErrNoIdentifier
	}
	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run_id", runID), zap.String("identifier", id.Value()))

	report := NewReport()
	query := id.Query()
	logger.Info("searching", zap.String("query", query))
	seeds, err := o.searcher.Search(ctx, query, o.cfg.MaxSearchResults)
	if err != nil {
		logger.Warn("search failed", zap.Error(err))
		return report, nil
	}

	for _, seed := range seeds {
		logger.Info("search result", zap.String("url", seed))
		if err := o.crawlSeed(ctx, seed, id, report); err != nil {
			seedFailuresTotal.Inc()
			logger.Warn("seed failed", zap.String("url", seed), zap.Error(err))
		}
	}

	if path, err := report.WriteFile(o.cfg.LogsDir); err != nil {
		logger.Error("report write failed", zap.Error(err))
	} else if path != "" {
		logger.Info("scout report generated", zap.String("path", path), zap.Int("entries", report.Len()))
	} else {
		logger.Info("no report generated")
	}
	o.archiveEntries(ctx, report, logger)
	return report, nil
}

// crawlSeed runs one seed's sub-crawl with freshly scoped budgets. A panic
// in one seed is contained so the remaining seeds still run.
func (o *Orchestrator) crawlSeed(ctx context.Context, seed string, id Identifier, report *Report) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("seed crawl panicked: %v", rec)
		}
	}()
	ledger := NewVisitLedger(o.cfg.MaxURLVisits, o.cfg.MaxDomainVisits)
	budget := NewDownloadBudget(o.cfg.DownloadLimit)
	task := Task{
		URL:        seed,
		Depth:      o.cfg.Depth,
		Identifier: id,
	}
	o.crawler.Crawl(ctx, task, ledger, budget, report)
	return nil
}

// archiveEntries forwards report entries to the configured sink. Archive
// failures never remove entries from the report.
func (o *Orchestrator) archiveEntries(ctx context.Context, report *Report, logger *zap.Logger) {
	if o.archive == nil {
		return
	}
	for _, entry := range report.Entries() {
		if err := o.archive.SaveEntry(ctx, entry); err != nil {
			logger.Warn("archive entry failed", zap.String("url", entry.URL), zap.Error(err))
		}
	}
}
