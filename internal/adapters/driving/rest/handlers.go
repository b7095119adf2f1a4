package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// SuggestResponse is the body of GET /suggest.
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// RelatedResponse is the body of GET /documents/{id}/related.
type RelatedResponse struct {
	ID      string                 `json:"id"`
	Results []domain.RelatedResult `json:"results"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string    `json:"status"`
	Generation string    `json:"generation,omitempty"`
	Engine     string    `json:"engine,omitempty"`
	Documents  int       `json:"documents"`
	BuiltAt    time.Time `json:"built_at,omitzero"`
}

// Health statuses.
const (
	StatusOK       = "ok"
	StatusStarting = "starting"
)

func (s *Server) handleSearch(req *restful.Request, resp *restful.Response) {
	limit, err := intParam(req, "limit")
	if err != nil {
		writeError(resp, err)
		return
	}
	docType, err := domain.ParseDocumentType(req.QueryParameter("type"))
	if err != nil {
		writeError(resp, fmt.Errorf("type %q: %w", req.QueryParameter("type"), err))
		return
	}
	fuzzy, err := boolParam(req, "fuzzy", true)
	if err != nil {
		writeError(resp, err)
		return
	}

	query := req.QueryParameter("q")
	opts := domain.SearchOptions{Limit: limit, Type: docType, DisableFuzzy: !fuzzy}

	results, err := s.ports.Search.Search(req.Request.Context(), query, opts)
	if err != nil {
		writeError(resp, err)
		return
	}

	writeOK(resp, SearchResponse{Query: query, Results: results, Count: len(results)})
}

func (s *Server) handleSuggest(req *restful.Request, resp *restful.Response) {
	limit, err := intParam(req, "limit")
	if err != nil {
		writeError(resp, err)
		return
	}

	query := req.QueryParameter("q")
	suggestions, err := s.ports.Search.Suggest(req.Request.Context(), query, limit)
	if err != nil {
		writeError(resp, err)
		return
	}

	writeOK(resp, SuggestResponse{Query: query, Suggestions: suggestions})
}

func (s *Server) handleDocument(req *restful.Request, resp *restful.Response) {
	doc, err := s.ports.Search.Document(req.Request.Context(), req.PathParameter("id"))
	if err != nil {
		writeError(resp, err)
		return
	}
	writeOK(resp, doc)
}

func (s *Server) handleRelated(req *restful.Request, resp *restful.Response) {
	limit, err := intParam(req, "limit")
	if err != nil {
		writeError(resp, err)
		return
	}

	id := req.PathParameter("id")
	related, err := s.ports.Search.Related(req.Request.Context(), id, limit)
	if err != nil {
		writeError(resp, err)
		return
	}

	writeOK(resp, RelatedResponse{ID: id, Results: related})
}

func (s *Server) handleRebuild(req *restful.Request, resp *restful.Response) {
	if s.ports.Index == nil {
		writeError(resp, domain.ErrSearchUnavailable)
		return
	}

	stats, err := s.ports.Index.Rebuild(req.Request.Context())
	if err != nil {
		writeError(resp, err)
		return
	}
	logger.Info("Rebuilt index %s via API", stats.Generation)
	writeOK(resp, stats)
}

func (s *Server) handleStats(_ *restful.Request, resp *restful.Response) {
	if s.ports.Index == nil {
		writeError(resp, domain.ErrSearchUnavailable)
		return
	}
	writeOK(resp, s.ports.Index.Stats())
}

func (s *Server) handleHistory(req *restful.Request, resp *restful.Response) {
	if s.ports.Index == nil {
		writeError(resp, domain.ErrSearchUnavailable)
		return
	}
	limit, err := intParam(req, "limit")
	if err != nil {
		writeError(resp, err)
		return
	}
	if limit == 0 {
		limit = 10
	}

	records, err := s.ports.Index.History(req.Request.Context(), limit)
	if err != nil {
		writeError(resp, err)
		return
	}
	writeOK(resp, records)
}

// handleHealth answers 200 once an index is active and 503 before.
func (s *Server) handleHealth(_ *restful.Request, resp *restful.Response) {
	health := HealthResponse{Status: StatusOK}
	if s.ports.Index != nil {
		stats := s.ports.Index.Stats()
		health.Generation = stats.Generation
		health.Engine = stats.Engine
		health.Documents = stats.Documents
		health.BuiltAt = stats.BuiltAt
		if stats.Generation == "" {
			health.Status = StatusStarting
		}
	}

	code := http.StatusOK
	if health.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	if err := resp.WriteHeaderAndEntity(code, health); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}

func writeOK(resp *restful.Response, v any) {
	if err := resp.WriteHeaderAndEntity(http.StatusOK, v); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}

// intParam parses a non-negative integer query parameter. Absent is zero.
func intParam(req *restful.Request, name string) (int, error) {
	raw := req.QueryParameter(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", name, domain.ErrInvalidInput)
	}
	return n, nil
}

func boolParam(req *restful.Request, name string, def bool) (bool, error) {
	raw := req.QueryParameter(name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", name, domain.ErrInvalidInput)
	}
	return b, nil
}
