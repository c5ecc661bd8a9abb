package scout

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// Default resource limits for one seed's sub-crawl.
const (
	DefaultMaxURLVisits    = 5
	DefaultMaxDomainVisits = 10
	DefaultDownloadLimit   = 5
	DefaultDepth           = 2
)

// Task is one unit of traversal work: a URL, the remaining recursion depth,
// and the seed's base URL used to resolve relative links. Tasks are created
// recursively and discarded after processing.
type Task struct {
	URL        string
	Depth      int
	Base       *url.URL
	Identifier Identifier
}

// Controller is the recursive traversal engine. Given a task it enforces the
// denylist and all budgets, classifies the URL, and either verifies-and-
// stores a PDF (terminal node) or extracts links and recurses (internal
// node). Sibling links are processed sequentially, one branch fully
// completing before the next begins, so the download budget is spent
// first-discovered, first-served.
type Controller struct {
	fetcher  Fetcher
	links    LinkExtractor
	text     TextExtractor
	store    FileStore
	denylist *Denylist
	verifier *Verifier
	logger   *zap.Logger
}

// NewController wires the traversal engine.
func NewController(
	fetcher Fetcher,
	links LinkExtractor,
	text TextExtractor,
	store FileStore,
	denylist *Denylist,
	verifier *Verifier,
	logger *zap.Logger,
) *Controller {
	if denylist == nil {
		denylist = DefaultDenylist()
	}
	if verifier == nil {
		verifier = NewVerifier()
	}
	return &Controller{
		fetcher:  fetcher,
		links:    links,
		text:     text,
		store:    store,
		denylist: denylist,
		verifier: verifier,
		logger:   logger,
	}
}

// Crawl processes a task and its recursive expansion. Every failure below
// this point is absorbed and logged; a branch that fails degrades report
// completeness, never run correctness.
func (c *Controller) Crawl(ctx context.Context, task Task, ledger *VisitLedger, budget *DownloadBudget, report *Report) {
	if task.Depth <= 0 || budget.Exhausted() {
		return
	}
	if c.denylist.ShouldSkip(task.URL) {
		skipsTotal.WithLabelValues(skipReasonDenylist).Inc()
		c.logger.Debug("skipped url", zap.String("url", task.URL), zap.String("reason", "denylist"))
		return
	}

	parsed, err := url.Parse(task.URL)
	if err != nil {
		c.logger.Debug("unparseable url", zap.String("url", task.URL), zap.Error(err))
		return
	}
	domain := parsed.Hostname()
	if !ledger.TryVisit(task.URL, domain) {
		reason := skipReasonDomainLimit
		if ledger.URLCapReached(task.URL) {
			reason = skipReasonURLLimit
		}
		skipsTotal.WithLabelValues(reason).Inc()
		c.logger.Debug("skipped url",
			zap.String("url", task.URL),
			zap.String("domain", domain),
			zap.String("reason", reason),
		)
		return
	}
	visitsTotal.Inc()

	// The seed task carries no base; infer it so relative links on every
	// page of this sub-crawl resolve against the seed's origin.
	if task.Base == nil {
		task.Base = &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	}

	if c.fetcher.IsPDF(ctx, task.URL) {
		c.handleDocument(ctx, task, budget, report)
		return
	}
	c.expand(ctx, task, ledger, budget, report)
}

// handleDocument downloads, verifies, and places a candidate PDF, appending
// a report entry for exact and similar matches.
func (c *Controller) handleDocument(ctx context.Context, task Task, budget *DownloadBudget, report *Report) {
	candidate, err := c.fetcher.FetchDocument(ctx, task.URL)
	if err != nil {
		fetchErrorsTotal.Inc()
		c.logger.Warn("document fetch failed", zap.String("url", task.URL), zap.Error(err))
		return
	}
	if !budget.TryConsume() {
		// Only reachable when siblings fetch concurrently; the budget was
		// free at the top of this step. Discard the surplus download.
		if _, err := c.store.Place(candidate, VerdictNone, task.Identifier, ""); err != nil {
			c.logger.Warn("discard over-budget candidate failed", zap.String("path", candidate.Path), zap.Error(err))
		}
		return
	}
	downloadsTotal.Inc()

	verdict := VerdictNone
	text, err := c.text.Text(candidate.Path)
	if err != nil {
		c.logger.Warn("text extraction failed", zap.String("path", candidate.Path), zap.Error(err))
	} else {
		verdict = c.verifier.Verify(text, task.Identifier)
	}
	verdictsTotal.WithLabelValues(verdict.String()).Inc()

	provider := task.Base.Hostname()
	storedPath, err := c.store.Place(candidate, verdict, task.Identifier, provider)
	if err != nil {
		// The downloaded temporary may remain orphaned here; degraded but
		// not fatal to the run.
		c.logger.Warn("file placement failed",
			zap.String("path", candidate.Path),
			zap.String("verdict", verdict.String()),
			zap.Error(err),
		)
		return
	}

	switch verdict {
	case VerdictExact:
		c.logger.Info("verified msds", zap.String("url", task.URL), zap.String("filepath", storedPath))
		report.Append(NewReportEntry(task.Identifier, provider, storedPath, task.URL, true))
	case VerdictSimilar:
		c.logger.Info("possible msds", zap.String("url", task.URL), zap.String("filepath", storedPath))
		report.Append(NewReportEntry(task.Identifier, provider, storedPath, task.URL, false))
	default:
		c.logger.Debug("rejected candidate", zap.String("url", task.URL))
	}
}

// expand extracts outbound links and recurses into each with one less depth.
func (c *Controller) expand(ctx context.Context, task Task, ledger *VisitLedger, budget *DownloadBudget, report *Report) {
	body, err := c.fetcher.FetchPage(ctx, task.URL)
	if err != nil {
		fetchErrorsTotal.Inc()
		c.logger.Warn("page fetch failed", zap.String("url", task.URL), zap.Error(err))
		return
	}
	links, err := c.links.Links(body, task.Base)
	if err != nil {
		c.logger.Warn("link extraction failed", zap.String("url", task.URL), zap.Error(err))
		return
	}
	for _, link := range links {
		child := Task{
			URL:        link,
			Depth:      task.Depth - 1,
			Base:       task.Base,
			Identifier: task.Identifier,
		}
		c.Crawl(ctx, child, ledger, budget, report)
	}
}
