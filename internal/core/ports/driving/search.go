package driving

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks the corpus against query and attaches highlight snippets.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Suggest returns completions for a partial query.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)

	// Related returns documents sharing metadata with the given document.
	Related(ctx context.Context, id string, limit int) ([]domain.RelatedResult, error)

	// Document retrieves an indexed document by ID.
	Document(ctx context.Context, id string) (*domain.SearchDocument, error)
}

// IndexService manages the lifecycle of the search index.
type IndexService interface {
	// Rebuild regenerates the corpus from all content sources and swaps in a new index.
	Rebuild(ctx context.Context) (domain.IndexStats, error)

	// Load builds the index from the persisted corpus, falling back to Rebuild
	// when nothing is stored.
	Load(ctx context.Context) (domain.IndexStats, error)

	// Stats describes the active index.
	Stats() domain.IndexStats

	// History returns recent build attempts, newest first.
	// Empty when no build log is configured.
	History(ctx context.Context, limit int) ([]domain.BuildRecord, error)
}
