package services

import (
	"fmt"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 5000

// pageSeparator terminates each page's text in the concatenated
// document. It advances the cursor but belongs to no page.
const pageSeparator = '\n'

// Chunker splits per-page document text into fixed-size segments with
// page attribution. Segments are contiguous and non-overlapping; the
// character range of segment i is [i*size, i*size+len). Sizes and
// ranges count runes, not bytes, so a boundary never lands inside a
// multi-byte character.
type Chunker struct {
	chunkSize int
}

// NewChunker creates a chunker producing segments of chunkSize
// characters. A non-positive size is a configuration error.
func NewChunker(chunkSize int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfiguration, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize}, nil
}

// pageRange is the half-open character range a page's own text
// occupies in the concatenated document.
type pageRange struct {
	number     int
	start, end int
}

// Chunk splits the pages into ordered segments. Each segment lists every
// page whose character range overlaps the segment's range, so a segment
// may map to multiple pages and a page to multiple segments. Degenerate
// segments are flagged Skip rather than dropped, so callers can surface
// a per-segment status. Empty input yields zero segments.
func (c *Chunker) Chunk(pages []domain.Page) ([]domain.Chunk, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	var full []rune
	ranges := make([]pageRange, 0, len(pages))
	for _, page := range pages {
		start := len(full)
		full = append(full, []rune(page.Text)...)
		ranges = append(ranges, pageRange{number: page.Number, start: start, end: len(full)})
		full = append(full, pageSeparator)
	}

	total := len(full)
	if total == 0 {
		return nil, nil
	}

	count := (total + c.chunkSize - 1) / c.chunkSize
	chunks := make([]domain.Chunk, 0, count)

	for i := 0; i < count; i++ {
		start := i * c.chunkSize
		end := start + c.chunkSize
		if end > total {
			end = total
		}
		segment := string(full[start:end])

		var attributed []int
		for _, pr := range ranges {
			// Half-open interval intersection.
			if start < pr.end && end > pr.start {
				attributed = append(attributed, pr.number)
			}
		}

		chunks = append(chunks, domain.Chunk{
			Text:  segment,
			Index: i,
			Pages: attributed,
			Skip:  domain.Degenerate(segment),
		})
	}

	return chunks, nil
}

// ChunkSize returns the configured segment size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}
