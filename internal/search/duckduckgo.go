// Package search adapts external search engines to the scout's Searcher
// capability.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Config controls the DuckDuckGo HTML endpoint adapter.
type Config struct {
	// BaseURL is the HTML (non-JS) search endpoint.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DuckDuckGo queries the DuckDuckGo HTML endpoint and scrapes result links.
// The engine is treated as opaque: it may be slow and may return no results.
type DuckDuckGo struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewDuckDuckGo builds the search adapter.
func NewDuckDuckGo(cfg Config, logger *zap.Logger) *DuckDuckGo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://html.duckduckgo.com/html"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &DuckDuckGo{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Search returns up to maxResults result URLs for the query, in rank order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	endpoint := fmt.Sprintf("%s?q=%s", d.cfg.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			d.logger.Debug("close search response", zap.Error(closeErr))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var results []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		target, ok := resolveResultURL(href)
		if !ok {
			return true
		}
		results = append(results, target)
		return maxResults <= 0 || len(results) < maxResults
	})
	d.logger.Debug("search completed", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// resolveResultURL unwraps DuckDuckGo's redirect links, which carry the real
// destination URL-encoded in the uddg parameter.
func resolveResultURL(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg, true
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return parsed.String(), true
	}
	return "", false
}
