package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingID indicates a document without an identifier.
	ErrMissingID = errors.New("document id is required")

	// ErrUnsupportedType indicates an unknown document type, engine or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIndexNotBuilt indicates a search was attempted before the first build.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrSearchUnavailable indicates the search engine is not configured.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrSourceFailed indicates a content source could not produce documents.
	ErrSourceFailed = errors.New("content source failed")

	// ErrRateLimited indicates the request rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
