package scout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// visitsTotal counts URLs admitted past the visit ledger.
	visitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_visits_total",
		Help: "The total number of URLs visited by the crawl controller.",
	})
	// skipsTotal counts branches terminated before any network access.
	skipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_skips_total",
		Help: "The total number of URLs skipped, labeled by reason.",
	}, []string{"reason"})
	// downloadsTotal counts successfully downloaded candidate documents.
	downloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_downloads_total",
		Help: "The total number of candidate documents downloaded.",
	})
	// fetchErrorsTotal counts fetches absorbed as no-result outcomes.
	fetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_fetch_errors_total",
		Help: "The total number of failed fetches.",
	})
	// verdictsTotal counts verification outcomes by verdict.
	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_verdicts_total",
		Help: "The total number of verification verdicts, labeled by verdict.",
	}, []string{"verdict"})
	// seedFailuresTotal counts seeds whose sub-crawl failed outright.
	seedFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_seed_failures_total",
		Help: "The total number of search-result seeds that failed.",
	})
)

const (
	skipReasonDenylist    = "denylist"
	skipReasonURLLimit    = "url_limit"
	skipReasonDomainLimit = "domain_limit"
)
