package driven

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// DocumentStore persists the generated corpus.
// Backed by SQLite or process memory.
type DocumentStore interface {
	// ReplaceAll atomically replaces the stored corpus, preserving order.
	ReplaceAll(ctx context.Context, docs []domain.SearchDocument) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.SearchDocument, error)

	// List returns every stored document in corpus order.
	List(ctx context.Context) ([]domain.SearchDocument, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
