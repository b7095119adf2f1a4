package rest

import (
	"context"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     []domain.SearchResult
	suggestions []string
	related     []domain.RelatedResult
	document    *domain.SearchDocument
	err         error
	panicWith   any

	lastQuery string
	lastOpts  domain.SearchOptions
	lastLimit int
	lastID    string
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	m.lastQuery = prefix
	m.lastLimit = limit
	return m.suggestions, m.err
}

func (m *mockSearchService) Related(_ context.Context, id string, limit int) ([]domain.RelatedResult, error) {
	m.lastID = id
	m.lastLimit = limit
	return m.related, m.err
}

func (m *mockSearchService) Document(_ context.Context, id string) (*domain.SearchDocument, error) {
	m.lastID = id
	return m.document, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	stats    domain.IndexStats
	history  []domain.BuildRecord
	err      error
	rebuilds int
}

func (m *mockIndexService) Rebuild(_ context.Context) (domain.IndexStats, error) {
	m.rebuilds++
	return m.stats, m.err
}

func (m *mockIndexService) Load(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockIndexService) Stats() domain.IndexStats {
	return m.stats
}

func (m *mockIndexService) History(_ context.Context, _ int) ([]domain.BuildRecord, error) {
	return m.history, m.err
}
