package driven

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// SearchEngine builds and queries a search index.
// Rebuild replaces the whole index atomically; concurrent searches observe
// either the previous or the new index, never a partial one.
type SearchEngine interface {
	// Name identifies the engine implementation.
	Name() string

	// Rebuild indexes docs, replacing any previous index.
	Rebuild(ctx context.Context, docs []domain.SearchDocument) (domain.IndexStats, error)

	// Search ranks indexed documents against query.
	// Returns domain.ErrIndexNotBuilt before the first Rebuild.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Documents returns the indexed corpus in order.
	Documents() []domain.SearchDocument

	// Stats describes the active index.
	Stats() domain.IndexStats

	// Close releases resources.
	Close() error
}
