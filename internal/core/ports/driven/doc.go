// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - VectorIndex: Vector storage and filtered similarity search
//   - EmbeddingService: Generates vector embeddings (the hash provider
//     is always available, so this never has to be nil)
//   - Normaliser / NormaliserRegistry: MIME-dispatched text extraction
//   - PostProcessor / PostProcessorPipeline: Chunking and enrichment
//   - ConfigStore: Engine configuration
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - Reranker: Cross-encoder second-pass scoring. Without it,
//     enriched search keeps the incoming order.
//   - SearchCache: Response caching. Without it, every search is
//     computed fresh.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
