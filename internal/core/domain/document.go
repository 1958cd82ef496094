package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// MinChunkContent is the minimum number of non-whitespace characters a
// chunk must contain after trimming to be worth embedding. Chunks below
// this threshold are flagged for skipping rather than silently indexed.
const MinChunkContent = 10

// Document represents an uploaded document owned by a single user.
// The record is immutable after creation except for deletion.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// UserID identifies the owning user.
	UserID string

	// Filename is the original name of the uploaded file.
	Filename string

	// CreatedAt is when the upload was accepted.
	CreatedAt time.Time

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}

// Page holds the extracted text of a single source page.
// Pages are numbered from 1 in source order.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the extracted text content of the page.
	Text string
}

// Chunk is a fixed-size contiguous text segment derived from a document.
// It is the unit of embedding and retrieval. Chunks are transient: they
// are not persisted as records, only as vector entries.
type Chunk struct {
	// Text is the segment content.
	Text string

	// Index is the 0-based position within the document.
	Index int

	// Pages are the source page numbers whose character ranges overlap
	// this chunk's range. A chunk may span multiple pages and a page may
	// span multiple chunks.
	Pages []int

	// Skip marks a degenerate chunk (fewer than MinChunkContent
	// non-whitespace characters). Skipped chunks are reported, not indexed.
	Skip bool
}

// EntryID returns the vector-store entry id for this chunk. The id is
// namespaced by document so re-indexing overwrites rather than duplicates,
// and concurrent ingestion of two documents can never collide.
func (c Chunk) EntryID(documentID string) string {
	return fmt.Sprintf("%s_%d", documentID, c.Index)
}

// PageList returns the chunk's page numbers as a comma-joined string,
// e.g. "1,2". Vector-store metadata values must be scalar, so page
// lists are stored in this form.
func (c Chunk) PageList() string {
	parts := make([]string, len(c.Pages))
	for i, n := range c.Pages {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Degenerate reports whether text is too empty to be worth embedding.
func Degenerate(text string) bool {
	count := 0
	for _, r := range strings.TrimSpace(text) {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count < MinChunkContent
}

// CollectionName returns the deterministic vector-collection name for a
// user. Every document a user owns lives in this one collection.
func CollectionName(userID string) string {
	return "user_documents_" + userID
}
