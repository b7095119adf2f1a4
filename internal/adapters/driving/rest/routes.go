package rest

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/perfecxion/sitesearch/internal/core/domain"
)

func (s *Server) registerRoutes() {
	ws := new(restful.WebService)
	ws.
		Path(APIRoot).
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	searchTags := []string{"search"}
	ws.Route(ws.GET("/search").
		To(s.handleSearch).
		Doc("Rank documents against a query").
		Metadata(restfulspec.KeyOpenAPITags, searchTags).
		Param(ws.QueryParameter("q", "query text").DataType("string")).
		Param(ws.QueryParameter("limit", "maximum number of results").DataType("integer").Required(false)).
		Param(ws.QueryParameter("type", "only return documents of this type").DataType("string").Required(false)).
		Param(ws.QueryParameter("fuzzy", "match query terms inside indexed terms (default true)").DataType("boolean").Required(false)).
		Writes(SearchResponse{}).
		Returns(http.StatusOK, "OK", SearchResponse{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}).
		Returns(http.StatusServiceUnavailable, "Index Not Built", ErrorResponse{}))

	ws.Route(ws.GET("/suggest").
		To(s.handleSuggest).
		Doc("Suggest completions for a partial query").
		Metadata(restfulspec.KeyOpenAPITags, searchTags).
		Param(ws.QueryParameter("q", "partial query").DataType("string")).
		Param(ws.QueryParameter("limit", "maximum number of suggestions").DataType("integer").Required(false)).
		Writes(SuggestResponse{}).
		Returns(http.StatusOK, "OK", SuggestResponse{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}))

	docTags := []string{"documents"}
	ws.Route(ws.GET("/documents/{id}").
		To(s.handleDocument).
		Doc("Get an indexed document").
		Metadata(restfulspec.KeyOpenAPITags, docTags).
		Param(ws.PathParameter("id", "document id").DataType("string")).
		Writes(domain.SearchDocument{}).
		Returns(http.StatusOK, "OK", domain.SearchDocument{}).
		Returns(http.StatusNotFound, "Not Found", ErrorResponse{}))

	ws.Route(ws.GET("/documents/{id}/related").
		To(s.handleRelated).
		Doc("List documents sharing category, type or tags").
		Metadata(restfulspec.KeyOpenAPITags, docTags).
		Param(ws.PathParameter("id", "document id").DataType("string")).
		Param(ws.QueryParameter("limit", "maximum number of related documents").DataType("integer").Required(false)).
		Writes(RelatedResponse{}).
		Returns(http.StatusOK, "OK", RelatedResponse{}).
		Returns(http.StatusNotFound, "Not Found", ErrorResponse{}))

	indexTags := []string{"index"}
	ws.Route(ws.POST("/index/rebuild").
		To(s.handleRebuild).
		Doc("Regenerate the corpus and rebuild the index").
		Consumes("*/*").
		Metadata(restfulspec.KeyOpenAPITags, indexTags).
		Writes(domain.IndexStats{}).
		Returns(http.StatusOK, "OK", domain.IndexStats{}).
		Returns(http.StatusInternalServerError, "Rebuild Failed", ErrorResponse{}))

	ws.Route(ws.GET("/index/stats").
		To(s.handleStats).
		Doc("Describe the active index").
		Metadata(restfulspec.KeyOpenAPITags, indexTags).
		Writes(domain.IndexStats{}).
		Returns(http.StatusOK, "OK", domain.IndexStats{}))

	ws.Route(ws.GET("/index/history").
		To(s.handleHistory).
		Doc("List recent index builds, newest first").
		Metadata(restfulspec.KeyOpenAPITags, indexTags).
		Param(ws.QueryParameter("limit", "maximum number of builds").DataType("integer").Required(false)).
		Writes([]domain.BuildRecord{}).
		Returns(http.StatusOK, "OK", []domain.BuildRecord{}))

	ws.Route(ws.GET("/health").
		To(s.handleHealth).
		Doc("Health check").
		Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
		Writes(HealthResponse{}).
		Returns(http.StatusOK, "OK", HealthResponse{}))

	s.container.Add(ws)
}
