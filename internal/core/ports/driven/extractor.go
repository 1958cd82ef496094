package driven

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// PageExtractor extracts per-page text from an uploaded file.
// Text extraction from binary formats is best effort; no claim of
// exactness is made.
type PageExtractor interface {
	// Extract returns the text of each page in source order.
	Extract(ctx context.Context, content []byte) ([]domain.Page, error)

	// Supports reports whether the extractor handles the given filename.
	Supports(filename string) bool
}
