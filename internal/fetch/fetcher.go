// Package fetch implements URL classification and retrieval using the Colly
// collector.
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/chemscout/msds-scout/internal/scout"
)

const pdfContentType = "application/pdf"

// Config controls collector behavior.
type Config struct {
	UserAgent     string
	Timeout       time.Duration
	UnverifiedDir string
}

// Fetcher implements scout.Fetcher using the Colly collector. One Fetcher is
// shared across all crawl runs; each request runs on a fresh clone of the
// base collector.
type Fetcher struct {
	cfg           Config
	limiter       *Limiter
	logger        *zap.Logger
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config, limiter *Limiter, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	// colly v2.1.0's Async option ignores its argument and always enables
	// async mode; rely on the synchronous default instead.
	c := colly.NewCollector()
	// Revisit policy belongs to the visit ledger, not the collector.
	c.AllowURLRevisit = true
	c.IgnoreRobotsTxt = true
	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Fetcher{
		cfg:           cfg,
		limiter:       limiter,
		logger:        logger,
		transport:     transport,
		baseCollector: c,
	}
}

// IsPDF probes whether the URL points at a PDF payload. A PDF path suffix
// succeeds fast without a network round trip; otherwise a HEAD probe
// inspects the declared content type. Failed or timed-out probes report
// false: an unclassifiable URL is treated as HTML, never silently skipped.
func (f *Fetcher) IsPDF(ctx context.Context, rawURL string) bool {
	if u, err := url.Parse(rawURL); err == nil && strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
		return true
	}
	contentType, err := f.probe(ctx, rawURL)
	if err != nil {
		f.logger.Debug("content probe failed", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	return isPDF(contentType)
}

// FetchDocument retrieves a PDF payload and writes it to the unverified
// area, deriving the file name from the URL's last path segment with a .pdf
// suffix enforced. Non-PDF payloads are discarded with an error.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (scout.CandidateDocument, error) {
	body, contentType, err := f.get(ctx, rawURL)
	if err != nil {
		return scout.CandidateDocument{}, err
	}
	if !isPDF(contentType) {
		return scout.CandidateDocument{}, fmt.Errorf("content type %q is not a pdf", contentType)
	}
	if err := os.MkdirAll(f.cfg.UnverifiedDir, 0o750); err != nil {
		return scout.CandidateDocument{}, fmt.Errorf("create unverified dir: %w", err)
	}
	target := filepath.Join(f.cfg.UnverifiedDir, documentFileName(rawURL))
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return scout.CandidateDocument{}, fmt.Errorf("write candidate %s: %w", target, err)
	}
	f.logger.Info("downloaded candidate", zap.String("url", rawURL), zap.String("path", target))
	return scout.CandidateDocument{Path: target, Body: body}, nil
}

// FetchPage retrieves an HTML payload.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	body, _, err := f.get(ctx, rawURL)
	return body, err
}

func (f *Fetcher) probe(ctx context.Context, rawURL string) (string, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}
	var (
		contentType string
		fetchErr    error
	)
	collector := f.newCollector()
	collector.OnResponse(func(r *colly.Response) {
		contentType = r.Headers.Get("Content-Type")
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})
	if err := f.run(ctx, rawURL, func() error { return collector.Head(rawURL) }, &fetchErr); err != nil {
		return "", err
	}
	return contentType, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, "", err
	}
	var (
		body        []byte
		contentType string
		fetchErr    error
	)
	collector := f.newCollector()
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
		contentType = r.Headers.Get("Content-Type")
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})
	if err := f.run(ctx, rawURL, func() error { return collector.Visit(rawURL) }, &fetchErr); err != nil {
		return nil, "", err
	}
	return body, contentType, nil
}

func (f *Fetcher) newCollector() *colly.Collector {
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.SetRequestTimeout(f.cfg.Timeout)
	collector.WithTransport(f.transport)
	return collector
}

// run executes one collector request, honoring context cancellation.
func (f *Fetcher) run(ctx context.Context, rawURL string, visit func() error, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- visit()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch %s canceled: %w", rawURL, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("fetch %s: %w", rawURL, err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("fetch %s: %w", rawURL, *fetchErr)
		}
		return nil
	}
}

func isPDF(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), pdfContentType)
}

// documentFileName derives a local name from the URL's last path segment,
// enforcing a .pdf suffix.
func documentFileName(rawURL string) string {
	name := ""
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
