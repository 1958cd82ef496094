package services

import (
	"context"
	"strings"
	"sync"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockEmbedding implements driven.EmbeddingService for testing.
type mockEmbedding struct {
	mu sync.Mutex

	// vector is returned for every call unless embedFn is set.
	vector []float32

	// embedFn, when set, decides the result per input text.
	embedFn func(text string) ([]float32, error)

	// errs is a queue of errors returned before successful calls.
	errs []error

	// calls records every embedded text in order.
	calls []string
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	if m.vector != nil {
		return m.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedding) Dimensions() int   { return 3 }
func (m *mockEmbedding) ModelName() string { return "mock-embed" }
func (m *mockEmbedding) Close() error      { return nil }

func (m *mockEmbedding) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	mu          sync.Mutex
	collections map[string]*mockCollection
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{collections: make(map[string]*mockCollection)}
}

func (m *mockVectorStore) Collection(_ context.Context, name string) (driven.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[name]
	if !ok {
		col = newMockCollection()
		m.collections[name] = col
	}
	return col, nil
}

func (m *mockVectorStore) GetCollection(_ context.Context, name string) (driven.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[name]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return col, nil
}

func (m *mockVectorStore) DeleteCollection(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[name]; !ok {
		return domain.ErrCollectionNotFound
	}
	delete(m.collections, name)
	return nil
}

func (m *mockVectorStore) Close() error { return nil }

// seed installs a collection without going through Collection.
func (m *mockVectorStore) seed(name string) *mockCollection {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := newMockCollection()
	m.collections[name] = col
	return col
}

// mockCollection implements driven.Collection for testing.
type mockCollection struct {
	mu      sync.Mutex
	entries map[string]driven.Entry
	addErr  error

	// queryResults is a queue popped once per Query call.
	queryResults [][]driven.QueryHit
	queryErrs    []error
	queries      int
}

func newMockCollection() *mockCollection {
	return &mockCollection{entries: make(map[string]driven.Entry)}
}

func (m *mockCollection) Add(_ context.Context, entries []driven.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return nil
}

func (m *mockCollection) Query(_ context.Context, _ []float32, k int, _ map[string]any) ([]driven.QueryHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++

	if len(m.queryErrs) > 0 {
		err := m.queryErrs[0]
		m.queryErrs = m.queryErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(m.queryResults) == 0 {
		return nil, nil
	}
	hits := m.queryResults[0]
	m.queryResults = m.queryResults[1:]
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *mockCollection) Delete(_ context.Context, filter map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		match := true
		for key, want := range filter {
			if e.Metadata[key] != want {
				match = false
				break
			}
		}
		if match {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *mockCollection) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), nil
}

func (m *mockCollection) entry(id string) (driven.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

// mockDocStore implements driven.DocumentStore for testing.
type mockDocStore struct {
	mu   sync.Mutex
	docs map[string]domain.Document
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]domain.Document)}
}

func (m *mockDocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = *doc
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockDocStore) ListDocuments(_ context.Context, userID string) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *mockDocStore) DeleteDocument(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *mockDocStore) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[id]
	return ok
}

// mockKeywordStore implements driven.KeywordStore for testing.
type mockKeywordStore struct {
	mu       sync.Mutex
	keywords []domain.Keyword
	listErr  error
}

func (m *mockKeywordStore) SaveKeyword(_ context.Context, kw *domain.Keyword) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords = append(m.keywords, *kw)
	return nil
}

func (m *mockKeywordStore) ListKeywords(_ context.Context, userID string) ([]domain.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Keyword
	for _, kw := range m.keywords {
		if kw.UserID == userID {
			out = append(out, kw)
		}
	}
	return out, nil
}

func (m *mockKeywordStore) DeleteKeyword(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, kw := range m.keywords {
		if kw.ID == id {
			m.keywords = append(m.keywords[:i], m.keywords[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// mockCompletion implements driven.CompletionService for testing.
type mockCompletion struct {
	response string
	err      error
	prompts  []string
}

func (m *mockCompletion) Complete(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompletion) ModelName() string { return "mock-llm" }
func (m *mockCompletion) Close() error      { return nil }

// mockRetrieval implements driving.RetrievalService for testing.
type mockRetrieval struct {
	chunks  []domain.RetrievedChunk
	err     error
	lastK   int
	matched []domain.Keyword
}

func (m *mockRetrieval) Retrieve(
	_ context.Context, _, _ string, matched []domain.Keyword, k int,
) ([]domain.RetrievedChunk, error) {
	m.lastK = k
	m.matched = matched
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

// mockExtractor implements driven.PageExtractor for testing.
type mockExtractor struct {
	pages      []domain.Page
	err        error
	suffix     string
	extractCnt int
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) ([]domain.Page, error) {
	m.extractCnt++
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

func (m *mockExtractor) Supports(filename string) bool {
	if m.suffix == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), m.suffix)
}
