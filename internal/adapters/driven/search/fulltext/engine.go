// Package fulltext provides an alternate search engine backed by an in-memory
// bleve index. Ranking is bleve's own; field boosts mirror the default
// engine (title over description over content).
package fulltext

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/logger"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// Name is the engine identifier.
const Name = "bleve"

// Field boosts.
const (
	titleBoost       = 2.0
	descriptionBoost = 1.5
	contentBoost     = 1.0
	tagsBoost        = 1.0
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine holds one bleve index at a time; rebuild builds a new one and swaps it in.
type Engine struct {
	mu    sync.RWMutex
	index bleve.Index
	docs  []domain.SearchDocument
	byID  map[string]domain.SearchDocument
	stats domain.IndexStats
}

// New creates an engine with no index built.
func New() *Engine {
	return &Engine{}
}

// Name returns "bleve".
func (e *Engine) Name() string {
	return Name
}

// buildIndexMapping creates the mapping for search documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = false

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	keywordFieldMapping.Store = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("description", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("tags", textFieldMapping)
	docMapping.AddFieldMappingsAt("type", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Rebuild indexes docs into a fresh in-memory index and replaces the active one.
func (e *Engine) Rebuild(ctx context.Context, docs []domain.SearchDocument) (domain.IndexStats, error) {
	start := time.Now()

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	byID := make(map[string]domain.SearchDocument, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			_ = idx.Close()
			return domain.IndexStats{}, fmt.Errorf("rebuild: %w", err)
		}
		doc := docs[i]
		if err := batch.Index(doc.ID, indexedFields(doc)); err != nil {
			_ = idx.Close()
			return domain.IndexStats{}, fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
		byID[doc.ID] = doc
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return domain.IndexStats{}, fmt.Errorf("commit batch: %w", err)
	}

	stored := make([]domain.SearchDocument, len(docs))
	copy(stored, docs)

	stats := domain.IndexStats{
		Generation: uuid.NewString(),
		Engine:     Name,
		BuiltAt:    time.Now(),
		Duration:   time.Since(start),
	}
	stats.CountDocuments(stored)

	e.mu.Lock()
	old := e.index
	e.index, e.docs, e.byID, e.stats = idx, stored, byID, stats
	e.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			logger.Warn("Close previous bleve index: %v", err)
		}
	}
	return stats, nil
}

func indexedFields(doc domain.SearchDocument) map[string]any {
	return map[string]any{
		"title":       doc.Title,
		"description": doc.Description,
		"content":     doc.Content,
		"tags":        doc.Tags,
		"type":        string(doc.Type),
		"category":    doc.Category,
	}
}

// Search runs a boosted match query over title, description, content and tags.
func (e *Engine) Search(ctx context.Context, queryStr string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.index == nil {
		return nil, domain.ErrIndexNotBuilt
	}
	if len(searchindex.Tokenize(queryStr)) == 0 {
		return []domain.SearchResult{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(queryStr, opts), opts.EffectiveLimit(), 0, false)
	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, ok := e.byID[hit.ID]
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{Document: doc, Score: hit.Score})
	}
	return results, nil
}

func buildQuery(queryStr string, opts domain.SearchOptions) query.Query {
	field := func(name string, boost float64) query.Query {
		q := bleve.NewMatchQuery(queryStr)
		q.SetField(name)
		q.SetBoost(boost)
		if !opts.DisableFuzzy {
			q.SetFuzziness(1)
		}
		return q
	}

	text := bleve.NewDisjunctionQuery(
		field("title", titleBoost),
		field("description", descriptionBoost),
		field("content", contentBoost),
		field("tags", tagsBoost),
	)
	if opts.Type == "" {
		return text
	}

	typeQuery := bleve.NewTermQuery(string(opts.Type))
	typeQuery.SetField("type")
	return bleve.NewConjunctionQuery(text, typeQuery)
}

// Documents returns the indexed corpus, or nil before the first build.
func (e *Engine) Documents() []domain.SearchDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.docs
}

// Stats describes the active index.
func (e *Engine) Stats() domain.IndexStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.index == nil {
		return domain.IndexStats{Engine: Name}
	}
	return e.stats
}

// Close closes the active index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return nil
	}
	err := e.index.Close()
	e.index, e.docs, e.byID = nil, nil, nil
	return err
}
