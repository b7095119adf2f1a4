// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Elapsed time.Duration
	Err     error
}

// SuggestionsLoaded carries completions for the query being typed.
type SuggestionsLoaded struct {
	Prefix      string
	Suggestions []string
	Err         error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewDocument shows one document with related content.
	ViewDocument
	// ViewIndex shows index statistics and build history.
	ViewIndex
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	case ViewDocument:
		return "document"
	case ViewIndex:
		return "index"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentSelected signals a document should be opened.
type DocumentSelected struct {
	ID string
}

// DocumentLoaded carries a document and the documents related to it.
type DocumentLoaded struct {
	Document *domain.SearchDocument
	Related  []domain.RelatedResult
	Err      error
}

// IndexLoaded carries statistics and recent builds of the index.
type IndexLoaded struct {
	Stats   domain.IndexStats
	History []domain.BuildRecord
	Err     error
}

// IndexRebuilt signals a rebuild finished.
type IndexRebuilt struct {
	Stats domain.IndexStats
	Err   error
}
