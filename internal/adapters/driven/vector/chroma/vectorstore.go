// Package chroma provides a vector store adapter backed by a ChromaDB
// server over its REST API.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Chroma vector store.
type Config struct {
	// BaseURL is the Chroma server address (default: http://localhost:8000).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// VectorStore talks to a ChromaDB server. Collections are addressed by
// name; the server-assigned collection id is resolved once and cached
// on the returned Collection handle.
type VectorStore struct {
	client  *http.Client
	baseURL string
}

// collectionResponse is the Chroma collection resource format.
type collectionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewVectorStore creates a Chroma-backed vector store.
func NewVectorStore(cfg Config) *VectorStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &VectorStore{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Collection returns the named collection, creating it on the server if
// needed.
func (s *VectorStore) Collection(ctx context.Context, name string) (driven.Collection, error) {
	reqBody := map[string]any{
		"name":          name,
		"get_or_create": true,
	}

	var col collectionResponse
	if err := s.do(ctx, http.MethodPost, "/api/v1/collections", reqBody, &col); err != nil {
		return nil, fmt.Errorf("create collection %s: %w", name, err)
	}

	return &Collection{store: s, id: col.ID, name: name}, nil
}

// GetCollection returns the named collection without creating it.
func (s *VectorStore) GetCollection(ctx context.Context, name string) (driven.Collection, error) {
	var col collectionResponse
	err := s.do(ctx, http.MethodGet, "/api/v1/collections/"+name, nil, &col)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
		}
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}

	return &Collection{store: s, id: col.ID, name: name}, nil
}

// DeleteCollection removes the named collection and all its entries.
func (s *VectorStore) DeleteCollection(ctx context.Context, name string) error {
	err := s.do(ctx, http.MethodDelete, "/api/v1/collections/"+name, nil, nil)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
		}
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// statusError carries the HTTP status of a failed Chroma call.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("chroma error (status %d): %s", e.status, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	// Chroma reports a missing collection as a 400 with an error
	// message, depending on version; treat both as not found.
	return ok && (se.status == http.StatusNotFound || se.status == http.StatusBadRequest)
}

// do performs one JSON request against the server and decodes the
// response into out when out is non-nil.
func (s *VectorStore) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode, body: string(body)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Ensure Collection implements the interface.
var _ driven.Collection = (*Collection)(nil)

// Collection is a handle to one Chroma collection.
type Collection struct {
	store *VectorStore
	id    string
	name  string
}

// upsertRequest is the Chroma /upsert request format.
type upsertRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Documents  []string         `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
}

// queryRequest is the Chroma /query request format.
type queryRequest struct {
	QueryEmbeddings [][]float32    `json:"query_embeddings"`
	NResults        int            `json:"n_results"`
	Where           map[string]any `json:"where,omitempty"`
	Include         []string       `json:"include"`
}

// queryResponse is the Chroma /query response format. Results come
// back in parallel arrays, one inner slice per query embedding.
type queryResponse struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
	Distances [][]float64        `json:"distances"`
}

// deleteRequest is the Chroma /delete request format.
type deleteRequest struct {
	Where map[string]any `json:"where,omitempty"`
}

// Add upserts entries by id.
func (c *Collection) Add(ctx context.Context, entries []driven.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	req := upsertRequest{
		IDs:        make([]string, len(entries)),
		Embeddings: make([][]float32, len(entries)),
		Documents:  make([]string, len(entries)),
		Metadatas:  make([]map[string]any, len(entries)),
	}
	for i, e := range entries {
		req.IDs[i] = e.ID
		req.Embeddings[i] = e.Embedding
		req.Documents[i] = e.Text
		req.Metadatas[i] = e.Metadata
	}

	path := fmt.Sprintf("/api/v1/collections/%s/upsert", c.id)
	if err := c.store.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("upsert into %s: %w", c.name, err)
	}
	return nil
}

// Query returns the k entries nearest to the vector.
func (c *Collection) Query(ctx context.Context, vector []float32, k int, filter map[string]any) ([]driven.QueryHit, error) {
	req := queryRequest{
		QueryEmbeddings: [][]float32{vector},
		NResults:        k,
		Where:           filter,
		Include:         []string{"documents", "metadatas", "distances"},
	}

	var resp queryResponse
	path := fmt.Sprintf("/api/v1/collections/%s/query", c.id)
	if err := c.store.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", c.name, err)
	}

	if len(resp.IDs) == 0 {
		return nil, nil
	}

	hits := make([]driven.QueryHit, len(resp.IDs[0]))
	for i, id := range resp.IDs[0] {
		hit := driven.QueryHit{ID: id}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			hit.Text = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			hit.Metadata = resp.Metadatas[0][i]
		}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			hit.Distance = resp.Distances[0][i]
		}
		hits[i] = hit
	}
	return hits, nil
}

// Delete removes every entry whose metadata matches the filter.
func (c *Collection) Delete(ctx context.Context, filter map[string]any) error {
	path := fmt.Sprintf("/api/v1/collections/%s/delete", c.id)
	if err := c.store.do(ctx, http.MethodPost, path, deleteRequest{Where: filter}, nil); err != nil {
		return fmt.Errorf("delete from %s: %w", c.name, err)
	}
	return nil
}

// Count returns the number of entries in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	var count int
	path := fmt.Sprintf("/api/v1/collections/%s/count", c.id)
	if err := c.store.do(ctx, http.MethodGet, path, nil, &count); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return count, nil
}
