package driven

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// ContentSource produces search documents from one kind of site content.
type ContentSource interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Documents returns the source's documents in a stable order.
	Documents(ctx context.Context) ([]domain.SearchDocument, error)
}

// ContentWatcher signals that the underlying content changed.
type ContentWatcher interface {
	// Watch starts watching and returns a channel that receives a value
	// after each burst of changes. The channel is closed when ctx ends.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
