package domain

// RetrievedChunk is a single retrieval result: the stored chunk text
// with its vector-entry id and metadata.
type RetrievedChunk struct {
	// ID is the vector-store entry id ({documentID}_{chunkIndex}).
	ID string

	// Text is the stored chunk text.
	Text string

	// Metadata is the entry metadata written at index time:
	// document_id, filename, user_id, pages, chunk_index.
	Metadata map[string]any

	// Distance is the similarity distance reported by the collection
	// for the query that surfaced this chunk. Distances are not
	// comparable across different expansion queries and are never used
	// to re-rank the fused result set.
	Distance float64
}

// AudienceMode selects the persona framing used when answering.
type AudienceMode string

// Audience modes supported by the answer prompt.
const (
	// AudienceNone uses the neutral assistant framing.
	AudienceNone AudienceMode = "NONE"

	// AudienceGeneral frames answers for General Contractors.
	AudienceGeneral AudienceMode = "GC"

	// AudienceMechanical frames answers for Mechanical Contractors.
	AudienceMechanical AudienceMode = "MC"

	// AudienceElectrical frames answers for Electrical Contractors.
	AudienceElectrical AudienceMode = "EC"
)

// Answer is the result of asking a question about a user's documents.
type Answer struct {
	// Response is the generated answer text.
	Response string

	// Chunks are the retrieved chunks the answer was grounded on,
	// in fused priority order.
	Chunks []RetrievedChunk

	// Keywords are the user keywords that matched the question,
	// in match order.
	Keywords []Keyword
}
