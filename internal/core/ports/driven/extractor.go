package driven

import "context"

// Extractor pulls raw text out of a local file, page by page.
// Implementations are read-only and make no network calls.
type Extractor interface {
	// Extract returns the text of each page in order. A page that
	// yields no text contributes an empty string. A file that cannot
	// be opened or parsed returns domain.ErrExtractionFailed; partial
	// results must not be used in that case.
	Extract(ctx context.Context, path string) ([]string, error)
}
