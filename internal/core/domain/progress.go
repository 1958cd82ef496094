package domain

import "math"

// ProgressStatus classifies an ingestion progress event.
type ProgressStatus string

// Progress statuses emitted while indexing a document.
const (
	// ProgressStarted is emitted once before any chunk is processed.
	ProgressStarted ProgressStatus = "started"

	// ProgressProcessing is emitted after each chunk is embedded and stored.
	ProgressProcessing ProgressStatus = "processing"

	// ProgressSkipped is emitted for degenerate chunks that carry too
	// little content to embed.
	ProgressSkipped ProgressStatus = "skipped"

	// ProgressError is emitted when a chunk fails terminally. No further
	// chunks are processed after an error event.
	ProgressError ProgressStatus = "error"

	// ProgressComplete is the final event of a successful run.
	ProgressComplete ProgressStatus = "complete"
)

// ProgressEvent is a single ingestion progress update. Events are
// produced lazily and consumed by one downstream reader, so a caller
// can report partial progress without waiting for completion.
type ProgressEvent struct {
	// Status classifies the event.
	Status ProgressStatus

	// CurrentChunk is the 1-based chunk this event refers to.
	// Zero for started and complete events.
	CurrentChunk int

	// TotalChunks is the total number of chunks in the document.
	TotalChunks int

	// Processed is the running count of successfully indexed chunks.
	Processed int

	// Skipped is the running count of degenerate chunks.
	Skipped int

	// Percentage is the completion percentage, rounded to two decimals.
	// 100 only appears on a complete event.
	Percentage float64

	// Message is a human-readable description of the event.
	Message string

	// Err carries the failure detail for error events.
	Err string
}

// Percentage returns n of total as a percentage rounded to two decimals.
func Percentage(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*100*100) / 100
}
