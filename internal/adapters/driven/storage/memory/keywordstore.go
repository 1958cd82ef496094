package memory

import (
	"context"
	"sync"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
)

// Ensure KeywordStore implements the interface.
var _ driven.KeywordStore = (*KeywordStore)(nil)

// KeywordStore keeps keywords in memory, preserving insertion order.
type KeywordStore struct {
	mu       sync.RWMutex
	keywords []domain.Keyword
}

// NewKeywordStore creates an empty in-memory keyword store.
func NewKeywordStore() *KeywordStore {
	return &KeywordStore{}
}

// SaveKeyword stores or updates a keyword.
func (s *KeywordStore) SaveKeyword(_ context.Context, kw *domain.Keyword) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.keywords {
		if existing.ID == kw.ID {
			s.keywords[i] = *kw
			return nil
		}
	}
	s.keywords = append(s.keywords, *kw)
	return nil
}

// ListKeywords returns all keywords owned by a user in insertion order.
func (s *KeywordStore) ListKeywords(_ context.Context, userID string) ([]domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Keyword
	for _, kw := range s.keywords {
		if kw.UserID == userID {
			out = append(out, kw)
		}
	}
	return out, nil
}

// DeleteKeyword removes a keyword.
func (s *KeywordStore) DeleteKeyword(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, kw := range s.keywords {
		if kw.ID == id {
			s.keywords = append(s.keywords[:i], s.keywords[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
