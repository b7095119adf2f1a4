package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]domain.SearchDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]domain.SearchDocument),
	}
}

// ReplaceAll replaces the stored corpus. Later duplicates overwrite earlier ones in place.
func (s *DocumentStore) ReplaceAll(_ context.Context, docs []domain.SearchDocument) error {
	order := make([]string, 0, len(docs))
	byID := make(map[string]domain.SearchDocument, len(docs))
	for i := range docs {
		if docs[i].ID == "" {
			return fmt.Errorf("document %d: %w", i, domain.ErrMissingID)
		}
		if _, seen := byID[docs[i].ID]; !seen {
			order = append(order, docs[i].ID)
		}
		byID[docs[i].ID] = cloneDocument(docs[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.docs = byID
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.SearchDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc = cloneDocument(doc)
	return &doc, nil
}

// List returns every stored document in corpus order.
func (s *DocumentStore) List(_ context.Context) ([]domain.SearchDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SearchDocument, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneDocument(s.docs[id]))
	}
	return out, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Close is a no-op.
func (s *DocumentStore) Close() error {
	return nil
}

func cloneDocument(doc domain.SearchDocument) domain.SearchDocument {
	if doc.Tags != nil {
		doc.Tags = append([]string(nil), doc.Tags...)
	}
	return doc
}
