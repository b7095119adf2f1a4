package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockSearchService, index *mockIndexService) *Server {
	t.Helper()
	ports := &Ports{Search: search}
	if index != nil {
		ports.Index = index
	}
	server, err := NewServer(ports, Config{Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	return server
}

func serve(server *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewServer_RequiresSearch(t *testing.T) {
	_, err := NewServer(&Ports{}, Config{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestSearch(t *testing.T) {
	t.Run("returns results", func(t *testing.T) {
		search := &mockSearchService{results: []domain.SearchResult{
			{Document: domain.SearchDocument{ID: "product-torscan", Title: "TorScan", Type: domain.DocumentTypeProduct}, Score: 1.5},
		}}
		server := newTestServer(t, search, nil)

		rec := serve(server, http.MethodGet, "/api/v1/search?q=dark+web&limit=5&type=product&fuzzy=false")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[SearchResponse](t, rec)
		assert.Equal(t, "dark web", body.Query)
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, "product-torscan", body.Results[0].Document.ID)

		assert.Equal(t, "dark web", search.lastQuery)
		assert.Equal(t, domain.SearchOptions{Limit: 5, Type: domain.DocumentTypeProduct, DisableFuzzy: true}, search.lastOpts)
	})

	t.Run("defaults", func(t *testing.T) {
		search := &mockSearchService{results: []domain.SearchResult{}}
		server := newTestServer(t, search, nil)

		rec := serve(server, http.MethodGet, "/api/v1/search?q=ai")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.SearchOptions{}, search.lastOpts)
		assert.Equal(t, 0, decode[SearchResponse](t, rec).Count)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/search?q=ai&limit=abc",
			"/api/v1/search?q=ai&limit=-1",
			"/api/v1/search?q=ai&type=video",
			"/api/v1/search?q=ai&fuzzy=maybe",
		} {
			rec := serve(newTestServer(t, &mockSearchService{}, nil), http.MethodGet, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.NotEmpty(t, body.Message)
		}
	})

	t.Run("index not built", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{err: domain.ErrIndexNotBuilt}, nil)

		rec := serve(server, http.MethodGet, "/api/v1/search?q=ai")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSuggest(t *testing.T) {
	search := &mockSearchService{suggestions: []string{"Security", "security-testing"}}
	server := newTestServer(t, search, nil)

	rec := serve(server, http.MethodGet, "/api/v1/suggest?q=sec&limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[SuggestResponse](t, rec)
	assert.Equal(t, "sec", body.Query)
	assert.Equal(t, []string{"Security", "security-testing"}, body.Suggestions)
	assert.Equal(t, 2, search.lastLimit)
}

func TestDocument(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		search := &mockSearchService{document: &domain.SearchDocument{ID: "page-about", Title: "About", URL: "/about"}}
		server := newTestServer(t, search, nil)

		rec := serve(server, http.MethodGet, "/api/v1/documents/page-about")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "page-about", search.lastID)
		assert.Equal(t, "About", decode[domain.SearchDocument](t, rec).Title)
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{err: fmt.Errorf("document %q: %w", "x", domain.ErrNotFound)}, nil)

		rec := serve(server, http.MethodGet, "/api/v1/documents/x")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Message, "not found")
	})
}

func TestRelated(t *testing.T) {
	search := &mockSearchService{related: []domain.RelatedResult{
		{Document: domain.SearchDocument{ID: "product-adapt-ai"}, Score: 11},
	}}
	server := newTestServer(t, search, nil)

	rec := serve(server, http.MethodGet, "/api/v1/documents/product-torscan/related?limit=4")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[RelatedResponse](t, rec)
	assert.Equal(t, "product-torscan", body.ID)
	require.Len(t, body.Results, 1)
	assert.Equal(t, 11, body.Results[0].Score)
	assert.Equal(t, "product-torscan", search.lastID)
	assert.Equal(t, 4, search.lastLimit)
}

func TestIndexRoutes(t *testing.T) {
	stats := domain.IndexStats{Generation: "gen-1", Engine: "tfidf", Documents: 11}

	t.Run("rebuild", func(t *testing.T) {
		index := &mockIndexService{stats: stats}
		server := newTestServer(t, &mockSearchService{}, index)

		rec := serve(server, http.MethodPost, "/api/v1/index/rebuild")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 1, index.rebuilds)
		assert.Equal(t, "gen-1", decode[domain.IndexStats](t, rec).Generation)
	})

	t.Run("rebuild failure", func(t *testing.T) {
		index := &mockIndexService{err: fmt.Errorf("generate corpus: %w", domain.ErrSourceFailed)}
		server := newTestServer(t, &mockSearchService{}, index)

		rec := serve(server, http.MethodPost, "/api/v1/index/rebuild")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockIndexService{stats: stats})

		rec := serve(server, http.MethodGet, "/api/v1/index/stats")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 11, decode[domain.IndexStats](t, rec).Documents)
	})

	t.Run("history", func(t *testing.T) {
		index := &mockIndexService{history: []domain.BuildRecord{{Generation: "gen-2"}, {Error: "boom"}}}
		server := newTestServer(t, &mockSearchService{}, index)

		rec := serve(server, http.MethodGet, "/api/v1/index/history")

		require.Equal(t, http.StatusOK, rec.Code)
		records := decode[[]domain.BuildRecord](t, rec)
		require.Len(t, records, 2)
		assert.True(t, records[0].Succeeded())
		assert.False(t, records[1].Succeeded())
	})

	t.Run("without index service", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, nil)

		assert.Equal(t, http.StatusServiceUnavailable, serve(server, http.MethodPost, "/api/v1/index/rebuild").Code)
		assert.Equal(t, http.StatusServiceUnavailable, serve(server, http.MethodGet, "/api/v1/index/stats").Code)
	})
}

func TestHealth(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		index := &mockIndexService{stats: domain.IndexStats{Generation: "gen-1", Engine: "tfidf", Documents: 3}}
		server := newTestServer(t, &mockSearchService{}, index)

		rec := serve(server, http.MethodGet, "/api/v1/health")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[HealthResponse](t, rec)
		assert.Equal(t, StatusOK, body.Status)
		assert.Equal(t, 3, body.Documents)
	})

	t.Run("before first build", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockIndexService{})

		rec := serve(server, http.MethodGet, "/api/v1/health")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, StatusStarting, decode[HealthResponse](t, rec).Status)
	})
}

func TestRateLimit(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}}, Config{RateLimit: 1, Burst: 1})
	require.NoError(t, err)

	first := serve(server, http.MethodGet, "/api/v1/suggest?q=ai")
	second := serve(server, http.MethodGet, "/api/v1/suggest?q=ai")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Contains(t, decode[ErrorResponse](t, second).Message, domain.ErrRateLimited.Error())
}

func TestRecoverPanic(t *testing.T) {
	server := newTestServer(t, &mockSearchService{panicWith: "boom"}, nil)

	rec := serve(server, http.MethodGet, "/api/v1/search?q=ai")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID(t *testing.T) {
	server := newTestServer(t, &mockSearchService{}, nil)

	t.Run("generated", func(t *testing.T) {
		rec := serve(server, http.MethodGet, "/api/v1/suggest?q=ai")
		assert.Len(t, rec.Header().Get(HeaderRequestID), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=ai", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})
}

func TestOpenAPI(t *testing.T) {
	server := newTestServer(t, &mockSearchService{}, &mockIndexService{})

	rec := serve(server, http.MethodGet, "/api/v1/openapi.json")

	require.Equal(t, http.StatusOK, rec.Code)
	doc := decode[map[string]any](t, rec)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/search")
	assert.Contains(t, paths, "/api/v1/documents/{id}/related")
	assert.Contains(t, paths, "/api/v1/index/rebuild")
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Site Search API", info["title"])
}

func TestCORS(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}}, Config{CORSOrigins: []string{"https://perfecxion.ai"}})
	require.NoError(t, err)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=ai", nil)
		req.Header.Set("Origin", "https://perfecxion.ai")
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "https://perfecxion.ai", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/suggest?q=ai", nil)
		req.Header.Set("Origin", "https://example.com")
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	server := newTestServer(t, &mockSearchService{}, &mockIndexService{stats: domain.IndexStats{Generation: "g"}})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUnsupportedType, http.StatusBadRequest},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrIndexNotBuilt, http.StatusServiceUnavailable},
		{domain.ErrSearchUnavailable, http.StatusServiceUnavailable},
		{context.Canceled, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestConfigFromSettings(t *testing.T) {
	s := domain.DefaultSettings().Server

	cfg := ConfigFromSettings(s)

	assert.Equal(t, Config{Addr: ":8080", RateLimit: 20, Burst: 40, CORSOrigins: []string{"*"}}, cfg)
}
