package scout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// reportTimestampLayout names report files like 2026-08-23_14-05-09.json.
const reportTimestampLayout = "2006-01-02_15-04-05"

// ReportEntry records one verified or partially-verified document. Exactly
// one of CAS or Name is populated; Verified is true only for exact matches.
type ReportEntry struct {
	CAS      string `json:"cas"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Verified bool   `json:"verified"`
	Filepath string `json:"filepath"`
	URL      string `json:"url"`
}

// NewReportEntry builds an entry for a placed document.
func NewReportEntry(id Identifier, provider, storedPath, sourceURL string, verified bool) ReportEntry {
	return ReportEntry{
		CAS:      id.CAS,
		Name:     id.Name,
		Provider: provider,
		Verified: verified,
		Filepath: storedPath,
		URL:      sourceURL,
	}
}

// Report accumulates entries across all seeds of one orchestrator run.
// Appends are safe for concurrent use so seeds may be processed in parallel.
type Report struct {
	mu      sync.Mutex
	entries []ReportEntry
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Append adds an entry. Entries are immutable once appended.
func (r *Report) Append(entry ReportEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the accumulated entries in append order.
func (r *Report) Entries() []ReportEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// WriteFile serializes the report to a uniquely timestamped JSON file under
// dir and returns its path. An empty report writes nothing and returns ""
// with no error; that is the normal outcome when no candidate passed
// verification.
func (r *Report) WriteFile(dir string) (string, error) {
	entries := r.Entries()
	if len(entries) == 0 {
		return "", nil
	}
	payload, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", dir, err)
	}
	target := filepath.Join(dir, time.Now().Format(reportTimestampLayout)+".json")
	if err := os.WriteFile(target, payload, 0o600); err != nil {
		return "", fmt.Errorf("write report %s: %w", target, err)
	}
	return target, nil
}
