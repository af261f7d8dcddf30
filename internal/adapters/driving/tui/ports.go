// Package tui provides the interactive search console. It implements a
// driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/avocatech/juricite/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the console.
// The console is a read-only surface: it searches, it never ingests or
// mutates.
type Ports struct {
	// Search provides enriched legal search with tenant scoping.
	Search driving.LegalSearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
