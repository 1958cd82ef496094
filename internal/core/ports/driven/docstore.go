package driven

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// DocumentStore persists document records.
// Records are external CRUD; the core only needs these operations.
type DocumentStore interface {
	// SaveDocument stores a document record.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents owned by a user.
	ListDocuments(ctx context.Context, userID string) ([]domain.Document, error)

	// DeleteDocument removes a document record.
	DeleteDocument(ctx context.Context, id string) error
}

// KeywordStore persists keyword records.
type KeywordStore interface {
	// SaveKeyword stores a keyword record.
	SaveKeyword(ctx context.Context, kw *domain.Keyword) error

	// ListKeywords returns all keywords owned by a user.
	ListKeywords(ctx context.Context, userID string) ([]domain.Keyword, error)

	// DeleteKeyword removes a keyword record.
	DeleteKeyword(ctx context.Context, id string) error
}
