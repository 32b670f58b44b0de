// Package domain defines the core business entities for faqdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with its extracted text
//   - Chunk: An ephemeral slice of a document sized for embedding
//   - SearchHit: A ranked similarity search result
//   - IngestResult: The terminal state of an ingestion request
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
