// Package mcp provides a Model Context Protocol server adapter. It
// exposes the retrieval engine to AI assistants as tools (search,
// citation validation, entity extraction) and read-only resources
// (glossary, synonyms, related-article tables), so an external
// generation gateway can implement source-attributed answers end to
// end.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCitationService is returned when the citation service is not provided.
var ErrMissingCitationService = errors.New("mcp: citation service is required")
