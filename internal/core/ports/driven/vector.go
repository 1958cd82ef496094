package driven

import "context"

// VectorStore manages named vector collections. Drydock keeps one
// collection per user, addressed by domain.CollectionName.
type VectorStore interface {
	// Collection returns the named collection, creating it on first use.
	Collection(ctx context.Context, name string) (Collection, error)

	// GetCollection returns the named collection or
	// domain.ErrCollectionNotFound if it was never created.
	GetCollection(ctx context.Context, name string) (Collection, error)

	// DeleteCollection removes a collection and all its entries.
	DeleteCollection(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

// Entry is a single vector record: embedding, raw chunk text and
// metadata, keyed by a caller-supplied id. Writing an entry with an
// existing id overwrites it.
type Entry struct {
	// ID is the stable entry id ({documentID}_{chunkIndex}).
	ID string

	// Embedding is the chunk's vector.
	Embedding []float32

	// Text is the raw chunk text.
	Text string

	// Metadata holds document_id, filename, user_id, pages, chunk_index.
	Metadata map[string]any
}

// QueryHit is one ranked result from a similarity query.
type QueryHit struct {
	// ID is the matched entry id.
	ID string

	// Text is the stored chunk text.
	Text string

	// Metadata is the stored entry metadata.
	Metadata map[string]any

	// Distance is the similarity distance (smaller is closer).
	Distance float64
}

// Collection holds vector entries and answers nearest-neighbour queries.
type Collection interface {
	// Add upserts entries. Entries with existing ids are overwritten,
	// never duplicated.
	Add(ctx context.Context, entries []Entry) error

	// Query returns up to k nearest entries to the vector, closest
	// first. A non-nil filter restricts results to entries whose
	// metadata matches every key/value pair.
	Query(ctx context.Context, vector []float32, k int, filter map[string]any) ([]QueryHit, error)

	// Delete removes all entries whose metadata matches every
	// key/value pair in filter.
	Delete(ctx context.Context, filter map[string]any) error

	// Count returns the number of entries in the collection.
	Count(ctx context.Context) (int, error)
}
