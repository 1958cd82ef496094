package driven

import "context"

// CompletionService generates text from a prompt.
// This is an optional service - when nil, questions cannot be answered
// and keyword suggestion is disabled, but ingestion and retrieval work.
type CompletionService interface {
	// Complete generates text for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
