package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/core/ports/driving"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Ensure Chat implements the interface.
var _ driving.AskService = (*Chat)(nil)

// Chat answers questions: it matches the user's keywords against the
// question, retrieves context through the hybrid retriever and hands
// the assembled prompt to the completion model.
type Chat struct {
	keywords   driven.KeywordStore
	retrieval  driving.RetrievalService
	completion driven.CompletionService
	topK       int
}

// NewChat creates a chat service. The completion service is optional;
// without it Ask fails with domain.ErrCompletionUnavailable.
func NewChat(
	keywords driven.KeywordStore,
	retrieval driving.RetrievalService,
	completion driven.CompletionService,
) *Chat {
	return &Chat{
		keywords:   keywords,
		retrieval:  retrieval,
		completion: completion,
		topK:       DefaultTopK,
	}
}

// Ask answers a question about the user's documents.
func (s *Chat) Ask(ctx context.Context, userID, question string, mode domain.AudienceMode) (*domain.Answer, error) {
	if s.completion == nil {
		return nil, domain.ErrCompletionUnavailable
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	logger.Section("Ask")
	logger.Debug("User %s, mode %s: %q", userID, mode, question)

	keywords, err := s.keywords.ListKeywords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	matched := domain.MatchKeywords(question, keywords)
	logger.Debug("Matched %d of %d keywords", len(matched), len(keywords))

	chunks, err := s.retrieval.Retrieve(ctx, userID, question, matched, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	prompt := buildPrompt(mode, question, chunks, matched)
	response, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	return &domain.Answer{
		Response: response,
		Chunks:   chunks,
		Keywords: matched,
	}, nil
}

// buildPrompt assembles the answer prompt: persona framing, retrieved
// context, the question, and any keyword-specific instructions.
func buildPrompt(mode domain.AudienceMode, question string, chunks []domain.RetrievedChunk, matched []domain.Keyword) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	context := strings.Join(texts, "\n\n")

	var b strings.Builder
	b.WriteString(audienceFraming(mode))
	b.WriteString("\n\n<context>\n")
	b.WriteString(context)
	b.WriteString("\n</context>\n\n<question>\n")
	b.WriteString(question)
	b.WriteString("\n</question>\n")

	if len(matched) > 0 {
		b.WriteString("\nAdditional instructions for specific keywords:\n")
		for _, kw := range matched {
			fmt.Fprintf(&b, "- %s: %s\n", kw.Term, kw.Instruction)
		}
	}

	return b.String()
}

// audienceFraming returns the persona framing for an audience mode.
func audienceFraming(mode domain.AudienceMode) string {
	switch mode {
	case domain.AudienceGeneral:
		return "You are Drydock, an AI assistant specialized in construction document analysis for General Contractors (GCs). " +
			"Focus on overall project scope, scheduling, coordination between trades, and general construction requirements. " +
			"Answer the question based only on the provided context, emphasizing aspects relevant to GC responsibilities."
	case domain.AudienceMechanical:
		return "You are Drydock, an AI assistant specialized in construction document analysis for Mechanical Contractors (MCs). " +
			"Focus on HVAC systems, mechanical equipment, ductwork, piping, and mechanical specifications. " +
			"Answer the question based only on the provided context, emphasizing mechanical systems and related requirements."
	case domain.AudienceElectrical:
		return "You are Drydock, an AI assistant specialized in construction document analysis for Electrical Contractors (ECs). " +
			"Focus on electrical systems, power distribution, lighting, controls, and electrical specifications. " +
			"Answer the question based only on the provided context, emphasizing electrical systems and related requirements."
	default:
		return "You are a friendly assistant named Drydock tasked with answering questions about a document. " +
			"Answer the question based only on the provided context."
	}
}
