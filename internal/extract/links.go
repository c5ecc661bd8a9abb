// Package extract pulls outbound links from HTML payloads and plain text
// from PDF documents.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkParser extracts anchor targets from HTML payloads.
type LinkParser struct{}

// NewLinkParser returns a LinkParser.
func NewLinkParser() LinkParser {
	return LinkParser{}
}

// Links parses anchor elements and resolves each href against base,
// returning absolute URLs in document order. Duplicates are not removed
// here; the visit ledger deduplicates naturally.
func (LinkParser) Links(body []byte, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		links = append(links, ref.String())
	})
	return links, nil
}
