package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/logger"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// Ensure SearchService implements the interfaces.
var (
	_ driving.SearchService = (*SearchService)(nil)
	_ driving.IndexService  = (*SearchService)(nil)
)

const (
	maxHighlights      = 3
	maxHighlightLength = 200
)

// SearchService provides search and index lifecycle functionality.
type SearchService struct {
	engine      driven.SearchEngine
	corpus      *CorpusBuilder
	docStore    driven.DocumentStore
	buildLog    driven.BuildLog
	highlighter searchindex.Highlighter
	settings    domain.SearchSettings

	// rebuildMu serialises rebuilds; searches never take it.
	rebuildMu sync.Mutex
}

// NewSearchService creates a new search service.
// The docStore parameter is optional (can be nil).
func NewSearchService(
	engine driven.SearchEngine,
	corpus *CorpusBuilder,
	docStore driven.DocumentStore,
) *SearchService {
	return &SearchService{
		engine:      engine,
		corpus:      corpus,
		docStore:    docStore,
		highlighter: searchindex.DefaultHighlighter,
		settings:    domain.DefaultSettings().Search,
	}
}

// SetHighlighter sets the markers used for highlight snippets.
func (s *SearchService) SetHighlighter(h searchindex.Highlighter) {
	s.highlighter = h
}

// SetBuildLog enables recording of build attempts.
func (s *SearchService) SetBuildLog(log driven.BuildLog) {
	s.buildLog = log
}

// SetSearchSettings sets the default limit and fuzzy behaviour.
func (s *SearchService) SetSearchSettings(settings domain.SearchSettings) {
	s.settings = settings
}

// Search ranks the corpus against query and attaches highlight snippets.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if s.engine == nil {
		return nil, domain.ErrSearchUnavailable
	}

	// Return empty for empty query. Field boosts match the untrimmed query.
	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = s.settings.Limit
	}
	if !s.settings.Fuzzy {
		opts.DisableFuzzy = true
	}
	if opts.Type != "" && !opts.Type.IsValid() {
		return nil, fmt.Errorf("search type %q: %w", opts.Type, domain.ErrUnsupportedType)
	}
	logger.Debug("Limit: %d, Type: %q, Fuzzy: %t", opts.Limit, opts.Type, !opts.DisableFuzzy)

	start := time.Now()
	results, err := s.engine.Search(ctx, query, opts)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Engine %s returned %d results in %s", s.engine.Name(), len(results), time.Since(start))

	for i := range results {
		results[i].Highlights = s.generateHighlights(&results[i].Document, query)
	}

	logger.Info("Found %d results for %q", len(results), query)
	return results, nil
}

// Suggest returns completions for a partial query.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return nil, err
	}
	return searchindex.Suggest(docs, strings.TrimSpace(prefix), limit), nil
}

// Related returns documents sharing category, type or tags with the given document.
func (s *SearchService) Related(ctx context.Context, id string, limit int) ([]domain.RelatedResult, error) {
	target, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents(ctx)
	if err != nil {
		return nil, err
	}
	return searchindex.Related(docs, *target, limit), nil
}

// Document retrieves an indexed document by ID. With duplicate IDs the last one wins.
func (s *SearchService) Document(ctx context.Context, id string) (*domain.SearchDocument, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(docs) - 1; i >= 0; i-- {
		if docs[i].ID == id {
			doc := docs[i]
			return &doc, nil
		}
	}
	return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
}

// Rebuild regenerates the corpus, persists it when a store is configured
// and swaps in a freshly built index.
func (s *SearchService) Rebuild(ctx context.Context) (domain.IndexStats, error) {
	if s.engine == nil {
		return domain.IndexStats{}, domain.ErrSearchUnavailable
	}
	if s.corpus == nil {
		return domain.IndexStats{}, fmt.Errorf("rebuild: no corpus builder: %w", domain.ErrInvalidInput)
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	started := time.Now()
	stats, err := s.rebuild(ctx)
	s.recordBuild(ctx, started, stats, err)
	return stats, err
}

func (s *SearchService) rebuild(ctx context.Context) (domain.IndexStats, error) {
	logger.Section("Index Rebuild")
	docs, report, err := s.corpus.Generate(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("generate corpus: %w", err)
	}
	if len(report.Failed) > 0 {
		logger.Warn("Sources skipped: %s", strings.Join(report.Failed, ", "))
	}

	if s.docStore != nil {
		if err := s.docStore.ReplaceAll(ctx, docs); err != nil {
			return domain.IndexStats{}, fmt.Errorf("persist corpus: %w", err)
		}
		logger.Debug("Persisted %d documents", len(docs))
	}

	return s.rebuildEngine(ctx, docs)
}

// Load builds the index from the persisted corpus. Without a store, or when
// the store is empty, it falls back to Rebuild.
func (s *SearchService) Load(ctx context.Context) (domain.IndexStats, error) {
	if s.docStore == nil {
		return s.Rebuild(ctx)
	}

	docs, err := s.docStore.List(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		logger.Info("No stored corpus, generating from sources")
		return s.Rebuild(ctx)
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	logger.Section("Index Load")
	logger.Debug("Loaded %d stored documents", len(docs))
	return s.rebuildEngine(ctx, docs)
}

// Stats describes the active index.
func (s *SearchService) Stats() domain.IndexStats {
	if s.engine == nil {
		return domain.IndexStats{}
	}
	return s.engine.Stats()
}

// History returns recent build attempts, newest first.
func (s *SearchService) History(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	if s.buildLog == nil {
		return []domain.BuildRecord{}, nil
	}
	records, err := s.buildLog.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("build history: %w", err)
	}
	return records, nil
}

// recordBuild is best effort: a failing log never fails the build.
func (s *SearchService) recordBuild(ctx context.Context, started time.Time, stats domain.IndexStats, buildErr error) {
	if s.buildLog == nil {
		return
	}
	record := domain.BuildRecord{
		Generation: stats.Generation,
		Engine:     s.engine.Name(),
		Documents:  stats.Documents,
		StartedAt:  started.UTC(),
		Duration:   time.Since(started),
	}
	if buildErr != nil {
		record.Error = buildErr.Error()
	}
	if err := s.buildLog.Record(context.WithoutCancel(ctx), record); err != nil {
		logger.Warn("Failed to record build: %v", err)
	}
}

func (s *SearchService) rebuildEngine(ctx context.Context, docs []domain.SearchDocument) (domain.IndexStats, error) {
	stats, err := s.engine.Rebuild(ctx, docs)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("rebuild index: %w", err)
	}
	logger.Info("Index %s built: %d documents, %d terms in %s",
		stats.Generation, stats.Documents, stats.Terms, stats.Duration)
	return stats, nil
}

func (s *SearchService) documents(_ context.Context) ([]domain.SearchDocument, error) {
	if s.engine == nil {
		return nil, domain.ErrSearchUnavailable
	}
	if s.engine.Stats().Generation == "" {
		return nil, domain.ErrIndexNotBuilt
	}
	return s.engine.Documents(), nil
}

// generateHighlights creates up to three marked-up snippets from the
// sentences of the description and content that contain a query term.
func (s *SearchService) generateHighlights(doc *domain.SearchDocument, query string) []string {
	var highlights []string

	for _, field := range []string{doc.Description, doc.Content} {
		for _, sentence := range splitSentences(field) {
			if !searchindex.Matches(sentence, query) {
				continue
			}
			highlights = append(highlights, s.highlighter.Highlight(truncate(sentence, maxHighlightLength), query))
			if len(highlights) >= maxHighlights {
				return highlights
			}
		}
	}

	return highlights
}

// splitSentences splits content into sentences.
func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	// Don't forget the last sentence
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
