package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// SearchEngineKind selects the search engine implementation.
type SearchEngineKind string

// Available search engines.
const (
	// SearchEngineTFIDF is the built-in TF-IDF engine with fuzzy and boost ranking.
	SearchEngineTFIDF SearchEngineKind = "tfidf"

	// SearchEngineBleve is a bleve in-memory index with bleve's own ranking.
	SearchEngineBleve SearchEngineKind = "bleve"
)

// IsValid returns true if the engine is recognised.
func (k SearchEngineKind) IsValid() bool {
	switch k {
	case SearchEngineTFIDF, SearchEngineBleve:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SearchEngineKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the engine.
func (k SearchEngineKind) Description() string {
	switch k {
	case SearchEngineTFIDF:
		return "TF-IDF (fuzzy, field and recency boosts)"
	case SearchEngineBleve:
		return "Bleve (in-memory, BM25-style scoring)"
	default:
		return unknownDescription
	}
}

// StorageBackend selects where the generated corpus is kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps the corpus in process memory only.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite persists the corpus to a SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Limit is the default result cap.
	Limit int

	// Fuzzy enables substring matching by default.
	Fuzzy bool

	// Engine selects the search engine.
	Engine SearchEngineKind
}

// ContentSettings holds content source configuration.
type ContentSettings struct {
	// Dir is the markdown content root. Empty disables the markdown source.
	Dir string

	// Catalog is a product catalog TOML file. Empty uses the built-in catalog.
	Catalog string

	// Watch rebuilds the index when files under Dir change.
	Watch bool

	// Lenient skips failing sources instead of aborting the build.
	Lenient bool
}

// StorageSettings holds corpus persistence configuration.
type StorageSettings struct {
	Backend StorageBackend

	// Dir is the data directory for the SQLite backend.
	Dir string
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is requests per second per server. Zero disables limiting.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int

	// CORSOrigins lists allowed origins.
	CORSOrigins []string
}

// Settings holds all application settings.
type Settings struct {
	Search  SearchSettings
	Content ContentSettings
	Storage StorageSettings
	Server  ServerSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Search: SearchSettings{
			Limit:  DefaultSearchLimit,
			Fuzzy:  true,
			Engine: SearchEngineTFIDF,
		},
		Storage: StorageSettings{
			Backend: StorageMemory,
		},
		Server: ServerSettings{
			Addr:        ":8080",
			RateLimit:   20,
			Burst:       40,
			CORSOrigins: []string{"*"},
		},
	}
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if s.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive: %w", ErrInvalidInput)
	}
	if !s.Search.Engine.IsValid() {
		return fmt.Errorf("search.engine %q: %w", s.Search.Engine, ErrUnsupportedType)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("storage.backend %q: %w", s.Storage.Backend, ErrUnsupportedType)
	}
	if s.Server.RateLimit < 0 || s.Server.Burst < 0 {
		return fmt.Errorf("server rate limit must not be negative: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required: %w", ErrInvalidInput)
	}
	return nil
}
