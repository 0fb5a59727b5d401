// Package tui provides an interactive terminal user interface for juris.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks documents and finds similar ones.
	Search driving.SearchService

	// Documents lists and loads corpus documents.
	Documents driving.DocumentService

	// Scheduler triggers processing runs. Optional.
	Scheduler driving.Scheduler
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	documents driving.DocumentService,
	scheduler driving.Scheduler,
) *Ports {
	return &Ports{
		Search:    search,
		Documents: documents,
		Scheduler: scheduler,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
