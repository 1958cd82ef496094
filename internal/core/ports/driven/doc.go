// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Generates vector embeddings (Gemini, compatible APIs)
//   - VectorStore / Collection: Per-user vector storage and similarity search
//   - DocumentStore: Document record persistence
//   - KeywordStore: Keyword record persistence
//   - PageExtractor: Per-page text extraction from uploaded files
//
// # Optional Interfaces
//
//   - CompletionService: Text generation for answers and keyword
//     suggestions. Without it, retrieval still works but questions
//     cannot be answered.
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
