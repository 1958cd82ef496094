package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drydock-labs/drydock/internal/core/domain"
	"github.com/drydock-labs/drydock/internal/core/ports/driven"
	"github.com/drydock-labs/drydock/internal/logger"
)

// DefaultCooldown is how long the indexer backs off after the embedding
// provider rejects a call with a rate-limit signal, before the single
// retry.
const DefaultCooldown = 60 * time.Second

// Indexer embeds document chunks and writes them into the owner's
// vector collection, reporting progress as a lazy event stream.
type Indexer struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	throttle *Throttle
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithCooldown overrides the rate-limit cool-down duration.
func WithCooldown(d time.Duration) IndexerOption {
	return func(ix *Indexer) {
		if d > 0 {
			ix.cooldown = d
		}
	}
}

// WithIndexerSleep overrides the cool-down wait function. Used in tests.
func WithIndexerSleep(sleep func(ctx context.Context, d time.Duration) error) IndexerOption {
	return func(ix *Indexer) {
		ix.sleep = sleep
	}
}

// NewIndexer creates an indexer. The throttle is shared process-wide so
// concurrent ingestions stay under one global ceiling.
func NewIndexer(
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	throttle *Throttle,
	opts ...IndexerOption,
) *Indexer {
	ix := &Indexer{
		embedder: embedder,
		vectors:  vectors,
		throttle: throttle,
		cooldown: DefaultCooldown,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index processes chunks strictly in index order and streams progress
// events. The channel is closed when processing ends. Any unrecovered
// per-chunk failure is terminal for the document: an error event is
// emitted with partial counts and the remaining chunks are not
// processed, so a document can never silently miss chunks.
//
// Re-running Index for the same document with identical chunking
// overwrites the previous entries at the same ids, making retries safe.
func (ix *Indexer) Index(ctx context.Context, doc domain.Document, chunks []domain.Chunk) <-chan domain.ProgressEvent {
	events := make(chan domain.ProgressEvent)

	go func() {
		defer close(events)
		ix.run(ctx, doc, chunks, events)
	}()

	return events
}

func (ix *Indexer) run(ctx context.Context, doc domain.Document, chunks []domain.Chunk, events chan<- domain.ProgressEvent) {
	total := len(chunks)

	if !emit(ctx, events, domain.ProgressEvent{
		Status:      domain.ProgressStarted,
		TotalChunks: total,
		Message:     fmt.Sprintf("starting to process %d chunks", total),
	}) {
		return
	}

	collection, err := ix.vectors.Collection(ctx, domain.CollectionName(doc.UserID))
	if err != nil {
		emit(ctx, events, errorEvent(0, total, 0, 0, fmt.Errorf("open collection: %w", err)))
		return
	}

	processed, skipped := 0, 0

	for _, chunk := range chunks {
		current := chunk.Index + 1

		if chunk.Skip {
			skipped++
			logger.Debug("Skipping degenerate chunk %d/%d of %s", current, total, doc.ID)
			if !emit(ctx, events, domain.ProgressEvent{
				Status:       domain.ProgressSkipped,
				CurrentChunk: current,
				TotalChunks:  total,
				Processed:    processed,
				Skipped:      skipped,
				Percentage:   domain.Percentage(current, total),
				Message:      fmt.Sprintf("skipped empty chunk %d", current),
			}) {
				return
			}
			continue
		}

		if err := ix.throttle.Acquire(ctx); err != nil {
			emit(ctx, events, errorEvent(current, total, processed, skipped, fmt.Errorf("throttle: %w", err)))
			return
		}

		vector, err := ix.embedWithRetry(ctx, chunk.Text)
		if err != nil {
			emit(ctx, events, errorEvent(current, total, processed, skipped, err))
			return
		}

		entry := driven.Entry{
			ID:        chunk.EntryID(doc.ID),
			Embedding: vector,
			Text:      chunk.Text,
			Metadata: map[string]any{
				"document_id": doc.ID,
				"filename":    doc.Filename,
				"user_id":     doc.UserID,
				"pages":       chunk.PageList(),
				"chunk_index": chunk.Index,
			},
		}
		if err := collection.Add(ctx, []driven.Entry{entry}); err != nil {
			emit(ctx, events, errorEvent(current, total, processed, skipped, fmt.Errorf("store chunk %d: %w", current, err)))
			return
		}

		processed++
		if !emit(ctx, events, domain.ProgressEvent{
			Status:       domain.ProgressProcessing,
			CurrentChunk: current,
			TotalChunks:  total,
			Processed:    processed,
			Skipped:      skipped,
			Percentage:   domain.Percentage(current, total),
			Message:      fmt.Sprintf("processed chunk %d of %d", current, total),
		}) {
			return
		}
	}

	emit(ctx, events, domain.ProgressEvent{
		Status:      domain.ProgressComplete,
		TotalChunks: total,
		Processed:   processed,
		Skipped:     skipped,
		Percentage:  100,
		Message:     fmt.Sprintf("processed %d chunks, skipped %d empty chunks", processed, skipped),
	})
}

// embedWithRetry embeds one chunk. A provider rate-limit rejection is
// absorbed with one blocking cool-down and a single retry before the
// failure propagates. This is a call-site retry, separate from the
// throttle's own accounting.
func (ix *Indexer) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	vector, err := ix.embedder.Embed(ctx, text)
	if err == nil {
		return vector, nil
	}
	if !errors.Is(err, domain.ErrRateLimited) {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailure, err)
	}

	logger.Warn("Embedding rate limited, cooling down %s before retry", ix.cooldown)
	if err := ix.sleep(ctx, ix.cooldown); err != nil {
		return nil, err
	}
	if err := ix.throttle.Acquire(ctx); err != nil {
		return nil, err
	}

	vector, err = ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w after retry: %w", domain.ErrEmbeddingFailure, err)
	}
	return vector, nil
}

// emit sends an event unless the caller stopped consuming.
// Returns false when the context is done.
func emit(ctx context.Context, events chan<- domain.ProgressEvent, ev domain.ProgressEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func errorEvent(current, total, processed, skipped int, err error) domain.ProgressEvent {
	return domain.ProgressEvent{
		Status:       domain.ProgressError,
		CurrentChunk: current,
		TotalChunks:  total,
		Processed:    processed,
		Skipped:      skipped,
		Err:          err.Error(),
		Message:      fmt.Sprintf("error processing chunk %d", current),
	}
}
