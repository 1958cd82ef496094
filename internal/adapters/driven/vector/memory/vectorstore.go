// Package memory provides an in-memory vector store for testing and
// development.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore keeps collections of embedded entries in memory. Queries
// rank by cosine distance. Contents are lost on process exit.
type VectorStore struct {
	mu          sync.RWMutex
	collections map[string]*Collection
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		collections: make(map[string]*Collection),
	}
}

// Collection returns the named collection, creating it if needed.
func (s *VectorStore) Collection(_ context.Context, name string) (driven.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[name]
	if !ok {
		col = newCollection()
		s.collections[name] = col
	}
	return col, nil
}

// GetCollection returns the named collection or domain.ErrCollectionNotFound.
func (s *VectorStore) GetCollection(_ context.Context, name string) (driven.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return col, nil
}

// DeleteCollection removes the named collection and all its entries.
func (s *VectorStore) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	delete(s.collections, name)
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

// Ensure Collection implements the interface.
var _ driven.Collection = (*Collection)(nil)

// Collection is a single in-memory set of entries.
type Collection struct {
	mu      sync.RWMutex
	entries map[string]driven.Entry
}

func newCollection() *Collection {
	return &Collection{entries: make(map[string]driven.Entry)}
}

// Add upserts entries by id.
func (c *Collection) Add(_ context.Context, entries []driven.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: entry id is required", domain.ErrInvalidInput)
		}
		c.entries[e.ID] = e
	}
	return nil
}

// Query returns the k entries nearest to the vector by cosine distance,
// optionally restricted to entries whose metadata matches the filter.
func (c *Collection) Query(_ context.Context, vector []float32, k int, filter map[string]any) ([]driven.QueryHit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []driven.QueryHit
	for _, e := range c.entries {
		if !matchesFilter(e.Metadata, filter) {
			continue
		}
		hits = append(hits, driven.QueryHit{
			ID:       e.ID,
			Text:     e.Text,
			Metadata: e.Metadata,
			Distance: cosineDistance(vector, e.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].ID < hits[j].ID // deterministic ties
	})

	if k > 0 && k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Delete removes every entry whose metadata matches the filter.
func (c *Collection) Delete(_ context.Context, filter map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range c.entries {
		if matchesFilter(e.Metadata, filter) {
			delete(c.entries, id)
		}
	}
	return nil
}

// Count returns the number of entries in the collection.
func (c *Collection) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

func matchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

// cosineDistance is 1 - cosine similarity. Mismatched or zero vectors
// get the maximum distance instead of an error.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
