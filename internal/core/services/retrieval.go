package services

import (
	"context"
	"fmt"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/core/ports/driving"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Ensure Retrieval implements the interface.
var _ driving.RetrievalService = (*Retrieval)(nil)

// DefaultTopK is the number of nearest entries requested per query.
const DefaultTopK = 3

// Retrieval is the hybrid retriever: one semantic query for the
// question plus one expansion query per matched keyword, fused into a
// single ordered, deduplicated result list.
type Retrieval struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
}

// NewRetrieval creates a retrieval service.
func NewRetrieval(embedder driven.EmbeddingService, vectors driven.VectorStore) *Retrieval {
	return &Retrieval{
		embedder: embedder,
		vectors:  vectors,
	}
}

// Retrieve answers a question against the owner's collection.
//
// Keyword hits come first, in the order their keywords were matched —
// keyword instructions are domain-authoritative hints whose contract
// text should surface even when it scores below the purely semantic
// top-k. Semantic hits follow in their native rank order as a baseline.
// The combined list is deduplicated by entry id and never re-ranked by
// distance across sets, because distances from different queries are
// not comparable.
func (r *Retrieval) Retrieve(
	ctx context.Context, userID, question string, matched []domain.Keyword, k int,
) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Question: %q, matched keywords: %d", question, len(matched))

	if k <= 0 {
		k = DefaultTopK
	}

	collection, err := r.vectors.GetCollection(ctx, domain.CollectionName(userID))
	if err != nil {
		return nil, fmt.Errorf("get collection for user %s: %w", userID, err)
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %w", domain.ErrEmbeddingFailure, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: question produced an empty vector", domain.ErrInvalidQuery)
	}

	semantic, err := collection.Query(ctx, vector, k, nil)
	if err != nil {
		return nil, fmt.Errorf("semantic query: %w", err)
	}
	logger.Debug("Semantic set: %d hits", len(semantic))

	// Without keyword matches the semantic set is returned unmodified,
	// in its native rank order.
	if len(matched) == 0 {
		return toChunks(semantic), nil
	}

	seen := make(map[string]bool)
	var fused []domain.RetrievedChunk

	// Keyword expansions first, in match order. One failed expansion
	// must not abort its siblings or the semantic fallback.
	for _, kw := range matched {
		expanded := question + " " + kw.Instruction
		expVector, err := r.embedder.Embed(ctx, expanded)
		if err != nil {
			logger.Warn("Expansion embed failed for term %q: %v", kw.Term, err)
			continue
		}
		hits, err := collection.Query(ctx, expVector, k, nil)
		if err != nil {
			logger.Warn("Expansion query failed for term %q: %v", kw.Term, err)
			continue
		}
		logger.Debug("Expansion %q: %d hits", kw.Term, len(hits))
		for _, hit := range hits {
			if seen[hit.ID] {
				continue
			}
			seen[hit.ID] = true
			fused = append(fused, toChunk(hit))
		}
	}

	// Semantic fallback for entries the expansions did not surface.
	for _, hit := range semantic {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		fused = append(fused, toChunk(hit))
	}

	logger.Info("Fused results: %d", len(fused))
	return fused, nil
}

func toChunk(hit driven.QueryHit) domain.RetrievedChunk {
	return domain.RetrievedChunk{
		ID:       hit.ID,
		Text:     hit.Text,
		Metadata: hit.Metadata,
		Distance: hit.Distance,
	}
}

func toChunks(hits []driven.QueryHit) []domain.RetrievedChunk {
	chunks := make([]domain.RetrievedChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = toChunk(hit)
	}
	return chunks
}
