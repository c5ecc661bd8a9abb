// Package storage persists verified and partially-verified MSDS documents on
// the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/chemscout/msds-scout/internal/scout"
)

// Config captures the directory layout for document persistence.
type Config struct {
	// VerifiedDir holds exact matches, renamed to {identifier}_{provider}.pdf.
	VerifiedDir string `mapstructure:"verified_dir"`
	// UnverifiedDir holds downloads awaiting (or failing) verification.
	UnverifiedDir string `mapstructure:"unverified_dir"`
}

// Store implements scout.FileStore over two segregated directories.
type Store struct {
	verifiedDir   string
	unverifiedDir string
	logger        *zap.Logger
}

// New creates the storage areas if needed and returns a Store.
func New(cfg Config, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.VerifiedDir) == "" || strings.TrimSpace(cfg.UnverifiedDir) == "" {
		return nil, fmt.Errorf("verified and unverified directories are required")
	}
	for _, dir := range []string{cfg.VerifiedDir, cfg.UnverifiedDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return &Store{
		verifiedDir:   cfg.VerifiedDir,
		unverifiedDir: cfg.UnverifiedDir,
		logger:        logger,
	}, nil
}

// UnverifiedDir returns the staging directory candidates download into.
func (s *Store) UnverifiedDir() string {
	return s.unverifiedDir
}

// Place disposes of a candidate according to its verdict.
//
// Exact matches move into the verified area under a collision-safe name and
// the new path is returned. Similar matches stay where they were downloaded
// and keep their name. Non-matches are deleted. An error means no stored
// path was produced; the temporary file may remain orphaned on the move
// failure path, which is acceptable degraded behavior.
func (s *Store) Place(candidate scout.CandidateDocument, verdict scout.Verdict, id scout.Identifier, provider string) (string, error) {
	switch verdict {
	case scout.VerdictExact:
		target, err := s.verifiedPath(id, provider)
		if err != nil {
			return "", err
		}
		if err := os.Rename(candidate.Path, target); err != nil {
			return "", fmt.Errorf("move %s to verified: %w", candidate.Path, err)
		}
		return target, nil
	case scout.VerdictSimilar:
		return candidate.Path, nil
	default:
		if err := os.Remove(candidate.Path); err != nil {
			return "", fmt.Errorf("delete rejected candidate %s: %w", candidate.Path, err)
		}
		return "", nil
	}
}

// verifiedPath picks {identifier}_{provider}.pdf, appending _1, _2, ... until
// a free name is found. Existing files are never overwritten.
func (s *Store) verifiedPath(id scout.Identifier, provider string) (string, error) {
	stem := fmt.Sprintf("%s_%s", sanitizeComponent(id.Value()), sanitizeComponent(provider))
	name := stem + ".pdf"
	for counter := 1; ; counter++ {
		target := filepath.Join(s.verifiedDir, name)
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return target, nil
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", target, err)
		}
		name = fmt.Sprintf("%s_%d.pdf", stem, counter)
	}
}

// sanitizeComponent strips path separators from a file-name component.
// Identifiers keep their punctuation otherwise: commas and spaces are legal
// in the stored names.
func sanitizeComponent(value string) string {
	value = strings.ReplaceAll(value, "/", "_")
	value = strings.ReplaceAll(value, string(filepath.Separator), "_")
	return value
}
