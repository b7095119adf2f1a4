package domain

import "time"

// DefaultSearchLimit is the result cap used when none is supplied.
const DefaultSearchLimit = 20

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero or negative means DefaultSearchLimit.
	Limit int

	// Type restricts results to a single document type. Empty means all types.
	Type DocumentType

	// DisableFuzzy turns off substring matching against indexed terms.
	// Fuzzy matching is on by default.
	DisableFuzzy bool
}

// EffectiveLimit returns Limit, or DefaultSearchLimit when Limit is not positive.
func (o SearchOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultSearchLimit
	}
	return o.Limit
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document SearchDocument `json:"document"`

	// Score is the relevance score. Higher is better.
	Score float64 `json:"score"`

	// Highlights contains snippets with matched terms marked up.
	Highlights []string `json:"highlights,omitempty"`
}

// RelatedResult is a document related to another by shared metadata.
type RelatedResult struct {
	Document SearchDocument `json:"document"`
	Score    int            `json:"score"`
}

// IndexStats describes the currently active index.
type IndexStats struct {
	// Generation identifies one build of the index.
	Generation string `json:"generation"`

	// Engine names the search engine implementation.
	Engine string `json:"engine"`

	// Documents is the number of indexed documents.
	Documents int `json:"documents"`

	// Terms is the number of distinct indexed terms. Zero if the engine does not expose it.
	Terms int `json:"terms"`

	// ByType counts documents per type.
	ByType map[DocumentType]int `json:"by_type"`

	// ByCategory counts documents per category. Uncategorised documents are omitted.
	ByCategory map[string]int `json:"by_category"`

	// BuiltAt is when the index was built.
	BuiltAt time.Time `json:"built_at"`

	// Duration is how long the build took.
	Duration time.Duration `json:"duration"`
}

// CountDocuments fills ByType, ByCategory and Documents from docs.
func (s *IndexStats) CountDocuments(docs []SearchDocument) {
	s.Documents = len(docs)
	s.ByType = make(map[DocumentType]int)
	s.ByCategory = make(map[string]int)
	for i := range docs {
		s.ByType[docs[i].Type]++
		if docs[i].Category != "" {
			s.ByCategory[docs[i].Category]++
		}
	}
}

// BuildRecord is one entry in the index build history.
type BuildRecord struct {
	Generation string        `json:"generation,omitempty"`
	Engine     string        `json:"engine"`
	Documents  int           `json:"documents"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`

	// Error is empty for a successful build.
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the build produced an index.
func (r BuildRecord) Succeeded() bool {
	return r.Error == ""
}
