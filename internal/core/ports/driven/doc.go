// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document persistence and dedup lookup
//   - Extractor: Pulls raw text out of uploaded files
//   - EmbeddingService: Maps text to fixed-dimension vectors
//   - VectorIndex: Similarity search over embedded chunks
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - AnswerModel: Language model for answer and FAQ generation.
//     Without it, ingestion and search still function; ask degrades
//     to returning retrieved sources only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
