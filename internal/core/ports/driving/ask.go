package driving

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// AskService answers natural-language questions about a user's documents.
type AskService interface {
	// Ask retrieves context for the question and generates an answer.
	Ask(ctx context.Context, userID, question string, mode domain.AudienceMode) (*domain.Answer, error)
}

// RetrievalService exposes the hybrid retriever directly, without
// answer generation.
type RetrievalService interface {
	// Retrieve returns the fused, deduplicated chunk list for a
	// question and its matched keywords.
	Retrieve(ctx context.Context, userID, question string, matched []domain.Keyword, k int) ([]domain.RetrievedChunk, error)
}
