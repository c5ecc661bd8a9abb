package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// defaultMaxPages bounds extraction cost: MSDS identification content is
// always on the early pages, so full-document parsing is wasted work.
const defaultMaxPages = 5

// PDFText extracts plain text from the leading pages of a PDF file.
type PDFText struct {
	MaxPages int
}

// NewPDFText returns an extractor capped at maxPages (<=0 means the
// default of 5).
func NewPDFText(maxPages int) PDFText {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return PDFText{MaxPages: maxPages}
}

// Text concatenates the text of at most the first MaxPages pages. Corrupt,
// encrypted, or otherwise unparseable documents yield an error; callers
// treat that as "no text".
func (p PDFText) Text(path string) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse pdf %s: %v", path, rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close pdf %s: %w", path, closeErr)
		}
	}()

	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	last := reader.NumPage()
	if last > maxPages {
		last = maxPages
	}

	var sb strings.Builder
	for pageNo := 1; pageNo <= last; pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d of %s: %w", pageNo, path, err)
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
