package driving

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// KeywordService manages a user's retrieval keywords.
type KeywordService interface {
	// Add stores a keyword for a user.
	Add(ctx context.Context, userID, term, instruction string) (*domain.Keyword, error)

	// List returns all keywords owned by a user.
	List(ctx context.Context, userID string) ([]domain.Keyword, error)

	// Delete removes a keyword.
	Delete(ctx context.Context, id string) error

	// Suggest asks the completion model to propose keywords with
	// instructions from document content.
	Suggest(ctx context.Context, content string) ([]domain.Keyword, error)
}
