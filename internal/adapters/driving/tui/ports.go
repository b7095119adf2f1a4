// Package tui provides an interactive terminal user interface for site search.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// Highlighter is the snippet marker pair the TUI renders. Search services
// feeding the TUI should be configured with it.
var Highlighter = searchindex.Highlighter{Open: styles.MatchOpen, Close: styles.MatchClose}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Index exposes statistics and rebuilds. Optional.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, index driving.IndexService) *Ports {
	return &Ports{
		Search: search,
		Index:  index,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
