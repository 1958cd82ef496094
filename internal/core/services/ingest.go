package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/core/ports/driving"
	"github.com/drydock-labs/drydock/internal/logger"
)

// Ensure Ingest implements the interface.
var _ driving.IngestService = (*Ingest)(nil)

// Ingest orchestrates the upload path: extract pages, chunk, create the
// document record and stream indexing progress. A terminal indexing
// failure removes the record and any partial vector entries, so a
// failed upload never leaves a document that looks complete.
type Ingest struct {
	extractors []driven.PageExtractor
	chunker    *Chunker
	indexer    *Indexer
	docs       driven.DocumentStore
	vectors    driven.VectorStore
}

// NewIngest creates an ingest service. Extractors are tried in order;
// the first one that supports the filename wins.
func NewIngest(
	extractors []driven.PageExtractor,
	chunker *Chunker,
	indexer *Indexer,
	docs driven.DocumentStore,
	vectors driven.VectorStore,
) *Ingest {
	return &Ingest{
		extractors: extractors,
		chunker:    chunker,
		indexer:    indexer,
		docs:       docs,
		vectors:    vectors,
	}
}

// Ingest accepts an upload and starts indexing. The returned channel
// must be drained; it closes when indexing ends. A caller that stops
// consuming leaves the document partially indexed — deletion is the
// remediation.
func (s *Ingest) Ingest(
	ctx context.Context, userID, filename string, content []byte,
) (*domain.Document, <-chan domain.ProgressEvent, error) {
	extractor := s.extractorFor(filename)
	if extractor == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filename)
	}

	pages, err := extractor.Extract(ctx, content)
	if err != nil {
		return nil, nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	chunks, err := s.chunker.Chunk(pages)
	if err != nil {
		return nil, nil, fmt.Errorf("chunk %s: %w", filename, err)
	}

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		UserID:    userID,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		return nil, nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Ingesting %s for user %s: %d pages, %d chunks", filename, userID, len(pages), len(chunks))

	inner := s.indexer.Index(ctx, *doc, chunks)
	events := make(chan domain.ProgressEvent)

	go func() {
		defer close(events)

		failed := false
		for ev := range inner {
			if ev.Status == domain.ProgressError {
				failed = true
			}
			if !emit(ctx, events, ev) {
				return
			}
		}

		if failed {
			// All-or-nothing: a document must not survive with
			// silently missing chunks.
			logger.Warn("Ingestion of %s failed, rolling back document %s", filename, doc.ID)
			s.cleanup(doc)
		}
	}()

	return doc, events, nil
}

// DeleteDocument removes a document's vector entries (matched by
// document_id metadata) and then its record.
func (s *Ingest) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	collection, err := s.vectors.GetCollection(ctx, domain.CollectionName(doc.UserID))
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		// Nothing was ever indexed; only the record remains.
	case err != nil:
		return fmt.Errorf("get collection: %w", err)
	default:
		if err := collection.Delete(ctx, map[string]any{"document_id": documentID}); err != nil {
			return fmt.Errorf("delete vector entries: %w", err)
		}
	}

	if err := s.docs.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document record: %w", err)
	}
	return nil
}

// DeleteUserData removes a user's whole collection and all their
// document records.
func (s *Ingest) DeleteUserData(ctx context.Context, userID string) error {
	err := s.vectors.DeleteCollection(ctx, domain.CollectionName(userID))
	if err != nil && !errors.Is(err, domain.ErrCollectionNotFound) {
		return fmt.Errorf("delete collection: %w", err)
	}

	docs, err := s.docs.ListDocuments(ctx, userID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	var errs []error
	for _, doc := range docs {
		if err := s.docs.DeleteDocument(ctx, doc.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete document %s: %w", doc.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Ingest) extractorFor(filename string) driven.PageExtractor {
	for _, ex := range s.extractors {
		if ex.Supports(filename) {
			return ex
		}
	}
	return nil
}

// cleanup rolls back a failed ingestion. Best effort: the background
// context is used because the caller's context may already be done.
func (s *Ingest) cleanup(doc *domain.Document) {
	ctx := context.Background()

	collection, err := s.vectors.GetCollection(ctx, domain.CollectionName(doc.UserID))
	if err == nil {
		if err := collection.Delete(ctx, map[string]any{"document_id": doc.ID}); err != nil {
			logger.Warn("Rollback: delete vector entries for %s: %v", doc.ID, err)
		}
	} else if !errors.Is(err, domain.ErrCollectionNotFound) {
		logger.Warn("Rollback: get collection for %s: %v", doc.UserID, err)
	}

	if err := s.docs.DeleteDocument(ctx, doc.ID); err != nil {
		logger.Warn("Rollback: delete document record %s: %v", doc.ID, err)
	}
}
