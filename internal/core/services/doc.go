// Package services implements the core retrieval and citation logic.
//
// Services orchestrate domain logic using the driven ports, and expose
// the driving ports consumed by the CLI, TUI and MCP adapters:
//
//   - IngestService: normalise -> chunk -> embed -> index write path
//   - SearchService: hybrid (vector + keyword) and pure-vector search
//   - LegalSearchService: enriched search with entity extraction,
//     query expansion, translation, re-ranking and highlights
//   - CitationService: the No Source No Claim gate on generated text
//   - LexicalScorer: BM25-style keyword relevance
//   - SettingsService: engine configuration backed by a ConfigStore
//
// # Import Rules
//
//   - Can Import: domain, ports, internal/legal, internal/logger,
//     internal/ratelimit
//   - Cannot Import: Any adapter package
package services
