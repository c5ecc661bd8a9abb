package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Crawler.Depth)
	assert.Equal(t, 5, cfg.Crawler.MaxURLVisits)
	assert.Equal(t, 10, cfg.Crawler.MaxDomainVisits)
	assert.Equal(t, 5, cfg.Crawler.DownloadLimit)
	assert.Equal(t, 10, cfg.Crawler.MaxSearchResults)
	assert.Equal(t, 10*time.Second, cfg.Crawler.RequestTimeout)
	assert.Equal(t, 5, cfg.Crawler.PDFMaxPages)
	assert.Equal(t, "data/verified", cfg.Storage.VerifiedDir)
	assert.Equal(t, "data/unverified", cfg.Storage.UnverifiedDir)
	assert.Equal(t, "data/logs", cfg.Storage.LogsDir)
	assert.Equal(t, "https://html.duckduckgo.com/html", cfg.Search.BaseURL)
	assert.Equal(t, "report_entries", cfg.DB.Table)
	assert.Empty(t, cfg.DB.DSN)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCOUT_SERVER_PORT", "9090")
	t.Setenv("SCOUT_CRAWLER_DEPTH", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Crawler.Depth)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := []byte(`
server:
  port: 9999
crawler:
  download_limit: 2
storage:
  logs_dir: /tmp/scout-logs
`)
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Crawler.DownloadLimit)
	assert.Equal(t, "/tmp/scout-logs", cfg.Storage.LogsDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2, cfg.Crawler.Depth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"zero depth", "crawler:\n  depth: 0\n"},
		{"negative port", "server:\n  port: -1\n"},
		{"zero download limit", "crawler:\n  download_limit: 0\n"},
		{"blank user agent", "crawler:\n  user_agent: \"\"\n"},
		{"blank verified dir", "storage:\n  verified_dir: \"\"\n"},
		{"blank search url", "search:\n  base_url: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.payload), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
