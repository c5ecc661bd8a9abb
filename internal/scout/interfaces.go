package scout

import (
	"context"
	"net/url"
)

// CandidateDocument is a downloaded PDF awaiting verification. The crawl
// controller owns it until the file store either moves it into permanent
// storage or deletes it.
type CandidateDocument struct {
	Path string
	Body []byte
}

// Fetcher classifies and retrieves URLs.
type Fetcher interface {
	// IsPDF probes whether the URL points at a PDF payload. Probe failures
	// report false so the URL is treated as HTML rather than skipped.
	IsPDF(ctx context.Context, rawURL string) bool
	// FetchDocument retrieves a PDF and persists it to the unverified area.
	FetchDocument(ctx context.Context, rawURL string) (CandidateDocument, error)
	// FetchPage retrieves an HTML payload.
	FetchPage(ctx context.Context, rawURL string) ([]byte, error)
}

// LinkExtractor yields absolute outbound links from an HTML payload.
type LinkExtractor interface {
	Links(body []byte, base *url.URL) ([]string, error)
}

// TextExtractor extracts plain text from the leading pages of a stored PDF.
type TextExtractor interface {
	Text(path string) (string, error)
}

// FileStore places a candidate according to its verdict: moved to verified
// storage, left in unverified storage, or deleted. It returns the stored
// path, or "" when the candidate was discarded.
type FileStore interface {
	Place(candidate CandidateDocument, verdict Verdict, id Identifier, provider string) (string, error)
}

// Searcher is the external search capability: given a query it yields
// candidate seed URLs, at most maxResults of them.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Crawler runs one budgeted traversal rooted at a task.
type Crawler interface {
	Crawl(ctx context.Context, task Task, ledger *VisitLedger, budget *DownloadBudget, report *Report)
}

// EntrySink receives report entries for durable archival.
type EntrySink interface {
	SaveEntry(ctx context.Context, entry ReportEntry) error
}
