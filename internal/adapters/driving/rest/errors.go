// Package rest serves the search API over HTTP with go-restful.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("rest: search service is required")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrIndexNotBuilt), errors.Is(err, domain.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server side failures and writes an ErrorResponse.
func writeError(resp *restful.Response, err error) {
	writeStatus(resp, statusFor(err), err)
}

func writeStatus(resp *restful.Response, code int, err error) {
	if code >= http.StatusInternalServerError {
		logger.Error("HTTP %d: %v", code, err)
	}
	if werr := resp.WriteHeaderAndEntity(code, ErrorResponse{Code: code, Message: err.Error()}); werr != nil {
		logger.Warn("Writing error response: %v", werr)
	}
}
