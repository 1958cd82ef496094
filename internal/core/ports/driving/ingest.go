package driving

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// IngestService accepts document uploads and indexes their content.
type IngestService interface {
	// Ingest extracts, chunks and indexes an uploaded file for a user.
	// It returns the created document record and a channel of progress
	// events that the caller must drain. If ingestion fails terminally,
	// the document record and any partial vector entries are removed
	// before the channel closes: ingestion is all-or-nothing from the
	// caller's perspective.
	Ingest(ctx context.Context, userID, filename string, content []byte) (*domain.Document, <-chan domain.ProgressEvent, error)

	// DeleteDocument removes a document's vector entries and its record.
	DeleteDocument(ctx context.Context, documentID string) error

	// DeleteUserData removes a user's entire collection and records.
	DeleteUserData(ctx context.Context, userID string) error
}
