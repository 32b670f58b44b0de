// Package extractor pulls raw text out of PDF files, page by page.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure PDF implements the interface.
var _ driven.Extractor = (*PDF)(nil)

// PDF extracts text from PDF files using a pure-Go reader.
// It is read-only and makes no network calls.
type PDF struct{}

// NewPDF creates a new PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Extract returns the text of each page in order. Pages that yield no
// text contribute an empty string so page numbering stays stable. A file
// that cannot be opened or parsed returns domain.ErrExtractionFailed.
func (e *PDF) Extract(ctx context.Context, path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrExtractionFailed, path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is tolerated; the document may
			// still carry enough text on its other pages.
			logger.Warn("page %d of %s yielded no text: %v", i, path, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// Join concatenates per-page texts into a single document body,
// separating pages with blank lines and dropping empty pages.
func Join(pages []string) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if trimmed := strings.TrimSpace(page); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n\n")
}
