package services

import (
	"context"
	"sync"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// --- Mock implementations ---

// mockSource implements driven.ContentSource for testing.
type mockSource struct {
	name  string
	docs  []domain.SearchDocument
	err   error
	calls int
}

func (m *mockSource) Name() string {
	return m.name
}

func (m *mockSource) Documents(_ context.Context) ([]domain.SearchDocument, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// mockSearchEngine implements driven.SearchEngine for testing.
type mockSearchEngine struct {
	mu         sync.Mutex
	results    []domain.SearchResult
	searchErr  error
	rebuildErr error
	docs       []domain.SearchDocument
	stats      domain.IndexStats
	lastQuery  string
	lastOpts   domain.SearchOptions
	rebuilds   int
}

func (m *mockSearchEngine) Name() string {
	return "mock"
}

func (m *mockSearchEngine) Rebuild(_ context.Context, docs []domain.SearchDocument) (domain.IndexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuilds++
	if m.rebuildErr != nil {
		return domain.IndexStats{}, m.rebuildErr
	}
	m.docs = docs
	m.stats = domain.IndexStats{Generation: "gen", Engine: "mock"}
	m.stats.CountDocuments(docs)
	return m.stats, nil
}

func (m *mockSearchEngine) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = query
	m.lastOpts = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := make([]domain.SearchResult, len(m.results))
	copy(out, m.results)
	return out, nil
}

func (m *mockSearchEngine) Documents() []domain.SearchDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs
}

func (m *mockSearchEngine) Stats() domain.IndexStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func (m *mockSearchEngine) Close() error {
	return nil
}

// mockWatcher implements driven.ContentWatcher for testing.
type mockWatcher struct {
	ch  chan struct{}
	err error
}

func (m *mockWatcher) Watch(_ context.Context) (<-chan struct{}, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ch, nil
}

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct {
	mu       sync.Mutex
	err      error
	rebuilds int
}

func (m *mockIndexService) Rebuild(_ context.Context) (domain.IndexStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuilds++
	return domain.IndexStats{Generation: "g", Documents: m.rebuilds}, m.err
}

func (m *mockIndexService) Load(ctx context.Context) (domain.IndexStats, error) {
	return m.Rebuild(ctx)
}

func (m *mockIndexService) Stats() domain.IndexStats {
	return domain.IndexStats{}
}

func (m *mockIndexService) History(_ context.Context, _ int) ([]domain.BuildRecord, error) {
	return nil, nil
}

func (m *mockIndexService) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuilds
}

// mockBuildLog implements driven.BuildLog for testing.
type mockBuildLog struct {
	records []domain.BuildRecord
	err     error
}

func (m *mockBuildLog) Record(_ context.Context, record domain.BuildRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockBuildLog) Recent(_ context.Context, limit int) ([]domain.BuildRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.BuildRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}
