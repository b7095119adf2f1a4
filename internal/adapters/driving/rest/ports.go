package rest

import (
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the HTTP API.
type Ports struct {
	// Search answers search, suggest, related and document requests.
	Search driving.SearchService

	// Index exposes rebuilds and statistics. Optional: without it the
	// index routes answer 503.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
