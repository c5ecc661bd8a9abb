// Package archive provides optional durable persistence for report entries.
package archive

import (
	"context"

	"github.com/chemscout/msds-scout/internal/scout"
)

// Provider persists report entries beyond the per-run JSON report. Archive
// failures are absorbed by callers: an entry that fails to archive still
// appears in the run's report.
type Provider interface {
	SaveEntry(ctx context.Context, entry scout.ReportEntry) error
	Close()
}

// NoOp discards entries. Used when no archive database is configured.
type NoOp struct{}

// SaveEntry does nothing.
func (NoOp) SaveEntry(_ context.Context, _ scout.ReportEntry) error { return nil }

// Close does nothing.
func (NoOp) Close() {}
