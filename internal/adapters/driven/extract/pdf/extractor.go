// Package pdf provides a page extractor for PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor extracts per-page plain text from PDF content.
type Extractor struct{}

// NewExtractor creates a PDF page extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supports reports whether the filename looks like a PDF.
func (e *Extractor) Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Extract returns one Page per PDF page, numbered from 1. Pages whose
// text cannot be decoded are kept as empty pages so page numbering
// stays aligned with the source document.
func (e *Extractor) Extract(_ context.Context, content []byte) ([]domain.Page, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidInput)
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("Page %d: text extraction failed: %v", i, err)
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		pages = append(pages, domain.Page{Number: i, Text: text})
	}

	return pages, nil
}
