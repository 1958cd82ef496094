package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/core/ports/driving"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Ensure Keywords implements the interface.
var _ driving.KeywordService = (*Keywords)(nil)

// Keywords manages a user's retrieval keywords and can suggest new ones
// from document content using the completion model.
type Keywords struct {
	store      driven.KeywordStore
	completion driven.CompletionService
}

// NewKeywords creates a keyword service. The completion service is
// optional; without it Suggest fails with domain.ErrCompletionUnavailable.
func NewKeywords(store driven.KeywordStore, completion driven.CompletionService) *Keywords {
	return &Keywords{
		store:      store,
		completion: completion,
	}
}

// Add stores a keyword for a user.
func (s *Keywords) Add(ctx context.Context, userID, term, instruction string) (*domain.Keyword, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: term is required", domain.ErrInvalidInput)
	}

	kw := &domain.Keyword{
		ID:          uuid.New().String(),
		UserID:      userID,
		Term:        term,
		Instruction: instruction,
	}
	if err := s.store.SaveKeyword(ctx, kw); err != nil {
		return nil, fmt.Errorf("save keyword: %w", err)
	}
	return kw, nil
}

// List returns all keywords owned by a user.
func (s *Keywords) List(ctx context.Context, userID string) ([]domain.Keyword, error) {
	return s.store.ListKeywords(ctx, userID)
}

// Delete removes a keyword.
func (s *Keywords) Delete(ctx context.Context, id string) error {
	return s.store.DeleteKeyword(ctx, id)
}

// suggestedKeyword is the JSON shape the model is asked to produce.
type suggestedKeyword struct {
	Term        string `json:"term"`
	Instruction string `json:"instruction"`
}

// Suggest asks the completion model to extract keywords and their
// retrieval instructions from document content. Invalid entries are
// dropped, not raised. The returned keywords are unsaved.
func (s *Keywords) Suggest(ctx context.Context, content string) ([]domain.Keyword, error) {
	if s.completion == nil {
		return nil, domain.ErrCompletionUnavailable
	}

	raw, err := s.completion.Complete(ctx, suggestPrompt(content))
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	cleaned := stripCodeFences(raw)

	var suggestions []suggestedKeyword
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: model output is not a JSON array: %w", domain.ErrInvalidInput, err)
	}

	keywords := make([]domain.Keyword, 0, len(suggestions))
	for _, sug := range suggestions {
		kw := domain.Keyword{Term: sug.Term, Instruction: sug.Instruction}
		if !kw.Valid() {
			logger.Debug("Dropping suggested keyword with empty term")
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

func suggestPrompt(content string) string {
	return "You are an expert at analyzing construction documents and extracting important keywords and their associated instructions.\n" +
		"Parse the following document into a structured output with term (the keyword) and instruction (what to do with that keyword).\n" +
		"These instructions will be used to expand retrieval queries for a chatbot answering questions about the document, so structure them in a way that is helpful for that.\n\n" +
		"Document Content:\n" + content + "\n\n" +
		"1. Identify important terms, specifications, or requirements\n" +
		"2. Extract the relevant context or instructions that explain how to handle that keyword\n" +
		"3. Format the output as a JSON array of objects with 'term' and 'instruction' string fields\n\n" +
		"Output ONLY a valid JSON array of objects like this:\n" +
		"[\n" +
		"    {\"term\": \"BOD\", \"instruction\": \"ACCEPTABLE MANUFACTURERS:,MANUFACTURERS:,Base of design:,Base:,Optional:\"}\n" +
		"]\n\n" +
		"Do not include any explanations, headers, or additional text outside the JSON array."
}

// stripCodeFences removes a surrounding markdown code block, which
// models emit despite instructions not to.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	start := strings.Index(trimmed, "\n")
	end := strings.LastIndex(trimmed, "```")
	if start == -1 || end <= start {
		return trimmed
	}
	return strings.TrimSpace(trimmed[start+1 : end])
}
