// Package domain defines the core business entities for Drydock.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document owned by a user
//   - Page: The extracted text of a single source page
//   - Chunk: A fixed-size, page-attributed segment of a document
//   - Keyword: A user-defined term with retrieval instructions
//   - ProgressEvent: An ingestion progress update
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
