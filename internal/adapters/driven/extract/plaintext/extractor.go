// Package plaintext provides a page extractor for plain text files.
package plaintext

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extensions treated as plain text.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
	".log": true,
}

// Extractor treats a text file as a single-page document.
type Extractor struct{}

// NewExtractor creates a plain text page extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supports reports whether the filename has a plain text extension.
func (e *Extractor) Supports(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extract returns the whole file as page 1, with line endings
// normalised to \n.
func (e *Extractor) Extract(_ context.Context, content []byte) ([]domain.Page, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", domain.ErrInvalidInput)
	}

	text := string(content)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return []domain.Page{{Number: 1, Text: text}}, nil
}
