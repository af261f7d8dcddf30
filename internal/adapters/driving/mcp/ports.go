package mcp

import (
	"github.com/avocatech/juricite/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Search provides enriched legal retrieval.
	Search driving.LegalSearchService

	// Citation validates generated text against its sources.
	Citation driving.CitationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Citation == nil {
		return ErrMissingCitationService
	}
	return nil
}
