// Package config loads and validates scout service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Storage StorageConfig `mapstructure:"storage"`
	Search  SearchConfig  `mapstructure:"search"`
	DB      DBConfig      `mapstructure:"db"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CrawlerConfig governs per-run crawl budgets and fetch behavior.
type CrawlerConfig struct {
	Depth              int           `mapstructure:"depth"`
	MaxURLVisits       int           `mapstructure:"max_url_visits"`
	MaxDomainVisits    int           `mapstructure:"max_domain_visits"`
	DownloadLimit      int           `mapstructure:"download_limit"`
	MaxSearchResults   int           `mapstructure:"max_search_results"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	UserAgent          string        `mapstructure:"user_agent"`
	RateLimitPerDomain float64       `mapstructure:"rate_limit_per_domain"`
	PDFMaxPages        int           `mapstructure:"pdf_max_pages"`
}

// StorageConfig sets the document and report directory layout.
type StorageConfig struct {
	VerifiedDir   string `mapstructure:"verified_dir"`
	UnverifiedDir string `mapstructure:"unverified_dir"`
	LogsDir       string `mapstructure:"logs_dir"`
}

// SearchConfig points at the external search capability.
type SearchConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// DBConfig controls the optional report-entry archive.
type DBConfig struct {
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("crawler.depth", 2)
	v.SetDefault("crawler.max_url_visits", 5)
	v.SetDefault("crawler.max_domain_visits", 10)
	v.SetDefault("crawler.download_limit", 5)
	v.SetDefault("crawler.max_search_results", 10)
	v.SetDefault("crawler.request_timeout", "10s")
	v.SetDefault("crawler.user_agent", "msds-scout/1.0 (+https://github.com/chemscout/msds-scout)")
	v.SetDefault("crawler.rate_limit_per_domain", 2)
	v.SetDefault("crawler.pdf_max_pages", 5)
	v.SetDefault("storage.verified_dir", "data/verified")
	v.SetDefault("storage.unverified_dir", "data/unverified")
	v.SetDefault("storage.logs_dir", "data/logs")
	v.SetDefault("search.base_url", "https://html.duckduckgo.com/html")
	v.SetDefault("db.table", "report_entries")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Crawler.Depth <= 0 {
		return fmt.Errorf("crawler.depth must be > 0")
	}
	if c.Crawler.MaxURLVisits <= 0 {
		return fmt.Errorf("crawler.max_url_visits must be > 0")
	}
	if c.Crawler.MaxDomainVisits <= 0 {
		return fmt.Errorf("crawler.max_domain_visits must be > 0")
	}
	if c.Crawler.DownloadLimit <= 0 {
		return fmt.Errorf("crawler.download_limit must be > 0")
	}
	if c.Crawler.MaxSearchResults <= 0 {
		return fmt.Errorf("crawler.max_search_results must be > 0")
	}
	if c.Crawler.RequestTimeout <= 0 {
		return fmt.Errorf("crawler.request_timeout must be > 0")
	}
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Storage.VerifiedDir == "" || c.Storage.UnverifiedDir == "" || c.Storage.LogsDir == "" {
		return fmt.Errorf("storage directories must be set")
	}
	if c.Search.BaseURL == "" {
		return fmt.Errorf("search.base_url must be set")
	}
	return nil
}
