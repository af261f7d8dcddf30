// Package domain defines the core business entities for Juricite.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A normalised legal document
//   - Chunk: A bounded fragment of a document produced for indexing
//   - SearchResult: A source-attributed search hit
//   - LegalEntity: A statute/law/case reference recognised in text
//   - Source / CitationReport: The citation validator's contract
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
