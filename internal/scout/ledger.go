package scout

import (
	"strings"
	"sync"
)

// VisitLedger tracks per-URL and per-domain visit counts for one seed's
// sub-crawl and enforces both caps. Counts are monotonically non-decreasing
// within a run; a fresh ledger is created for every seed, so deduplication
// never crosses seed boundaries.
type VisitLedger struct {
	mu        sync.Mutex
	urls      map[string]int
	domains   map[string]int
	maxURL    int
	maxDomain int
}

// NewVisitLedger creates a ledger enforcing the given caps.
func NewVisitLedger(maxURLVisits, maxDomainVisits int) *VisitLedger {
	if maxURLVisits <= 0 {
		maxURLVisits = DefaultMaxURLVisits
	}
	if maxDomainVisits <= 0 {
		maxDomainVisits = DefaultMaxDomainVisits
	}
	return &VisitLedger{
		urls:      make(map[string]int),
		domains:   make(map[string]int),
		maxURL:    maxURLVisits,
		maxDomain: maxDomainVisits,
	}
}

// TryVisit records a visit to url/domain unless either cap is already
// reached. Both counters are incremented before the caller recurses, so link
// cycles cannot cause unbounded revisits.
func (l *VisitLedger) TryVisit(rawURL, domain string) bool {
	if rawURL == "" {
		return false
	}
	domain = strings.ToLower(domain)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.urls[rawURL] >= l.maxURL {
		return false
	}
	if l.domains[domain] >= l.maxDomain {
		return false
	}
	l.urls[rawURL]++
	l.domains[domain]++
	return true
}

// URLVisits returns how many times url has been visited.
func (l *VisitLedger) URLVisits(rawURL string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.urls[rawURL]
}

// URLCapReached reports whether url has exhausted its visit allowance.
func (l *VisitLedger) URLCapReached(rawURL string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.urls[rawURL] >= l.maxURL
}

// DomainVisits returns how many times domain has been visited.
func (l *VisitLedger) DomainVisits(domain string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.domains[strings.ToLower(domain)]
}

// DownloadBudget caps how many candidate files one seed's sub-crawl may
// successfully download. Once exhausted, traversal for that sub-crawl halts
// at the top of every recursive step.
type DownloadBudget struct {
	mu    sync.Mutex
	count int
	limit int
}

// NewDownloadBudget creates a budget with the given cap.
func NewDownloadBudget(limit int) *DownloadBudget {
	if limit <= 0 {
		limit = DefaultDownloadLimit
	}
	return &DownloadBudget{limit: limit}
}

// TryConsume claims one download slot, failing when the cap is reached.
func (b *DownloadBudget) TryConsume() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count >= b.limit {
		return false
	}
	b.count++
	return true
}

// Exhausted reports whether the cap has been reached.
func (b *DownloadBudget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count >= b.limit
}

// Count returns the number of slots consumed so far.
func (b *DownloadBudget) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
