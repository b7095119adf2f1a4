// Package tfidf provides the default search engine: an immutable in-memory
// TF-IDF index with fuzzy expansion and field and recency boosts.
package tfidf

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// Name is the engine identifier.
const Name = "tfidf"

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// generation pairs an index with its build metadata.
type generation struct {
	index *searchindex.Index
	stats domain.IndexStats
}

// Engine swaps whole indexes atomically on rebuild.
type Engine struct {
	current atomic.Pointer[generation]
	now     func() time.Time
}

// New creates an engine with no index built.
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock creates an engine whose recency boosts use now.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Name returns "tfidf".
func (e *Engine) Name() string {
	return Name
}

// Rebuild indexes docs and replaces the active index.
func (e *Engine) Rebuild(ctx context.Context, docs []domain.SearchDocument) (domain.IndexStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.IndexStats{}, fmt.Errorf("rebuild: %w", err)
	}

	start := time.Now()
	idx := searchindex.Build(docs)

	stats := domain.IndexStats{
		Generation: uuid.NewString(),
		Engine:     Name,
		Terms:      idx.TermCount(),
		BuiltAt:    e.now(),
		Duration:   time.Since(start),
	}
	stats.CountDocuments(idx.Documents())

	e.current.Store(&generation{index: idx, stats: stats})
	return stats, nil
}

// Search ranks the active index against query.
func (e *Engine) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gen := e.current.Load()
	if gen == nil {
		return nil, domain.ErrIndexNotBuilt
	}
	return gen.index.SearchAt(query, opts, e.now()), nil
}

// Documents returns the indexed corpus, or nil before the first build.
func (e *Engine) Documents() []domain.SearchDocument {
	gen := e.current.Load()
	if gen == nil {
		return nil
	}
	return gen.index.Documents()
}

// Stats describes the active index.
func (e *Engine) Stats() domain.IndexStats {
	gen := e.current.Load()
	if gen == nil {
		return domain.IndexStats{Engine: Name}
	}
	return gen.stats
}

// Close drops the active index.
func (e *Engine) Close() error {
	e.current.Store(nil)
	return nil
}
