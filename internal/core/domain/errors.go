package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFile indicates no extractor handles the uploaded file.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured. Answering and keyword suggestion are disabled;
	// ingestion and retrieval still work.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrInvalidConfiguration indicates malformed chunking or throttle
	// policy values. It is fatal and rejected before any work starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRateLimited indicates the embedding provider signalled throttling.
	// Recovered locally via one cool-down-and-retry at the call site; only
	// escalated if the retry also fails.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingFailure indicates a vector could not be generated for a
	// chunk or query for a reason other than throttling.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrCollectionNotFound indicates the user has no vector collection,
	// meaning nothing was ever ingested for them.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidQuery indicates the question embedded to a zero-length or
	// otherwise unusable vector.
	ErrInvalidQuery = errors.New("invalid query")
)
