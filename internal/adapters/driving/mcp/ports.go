package mcp

import (
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks documents and finds similar ones.
	Search driving.SearchService

	// Documents exposes the document catalogue.
	Documents driving.DocumentService

	// Scheduler runs document processing on demand.
	Scheduler driving.Scheduler
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Documents and Scheduler are optional; their tools and resources degrade.
	return nil
}
