package services

import (
	"context"
	"fmt"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// CorpusReport summarises one corpus generation.
type CorpusReport struct {
	// PerSource counts documents accepted from each source, keyed by source name.
	PerSource map[string]int

	// Skipped counts documents rejected for a missing ID or unknown type.
	Skipped int

	// Replaced counts documents overwritten by a later document with the same ID.
	Replaced int

	// Failed lists sources that errored and were skipped in lenient mode.
	Failed []string
}

// CorpusBuilder assembles the search corpus from content sources.
// Sources are read in registration order.
type CorpusBuilder struct {
	sources []driven.ContentSource
	lenient bool
}

// NewCorpusBuilder creates a corpus builder over the given sources.
func NewCorpusBuilder(sources ...driven.ContentSource) *CorpusBuilder {
	return &CorpusBuilder{sources: sources}
}

// SetLenient controls whether a failing source aborts generation.
// When lenient, the error is logged and the source contributes nothing.
func (b *CorpusBuilder) SetLenient(lenient bool) {
	b.lenient = lenient
}

// AddSource appends a source.
func (b *CorpusBuilder) AddSource(source driven.ContentSource) {
	b.sources = append(b.sources, source)
}

// Sources returns the registered source names in order.
func (b *CorpusBuilder) Sources() []string {
	names := make([]string, len(b.sources))
	for i, src := range b.sources {
		names[i] = src.Name()
	}
	return names
}

// Generate returns the combined corpus.
// Documents with an empty ID or unknown type are dropped. When two documents
// share an ID the later one wins and takes the earlier one's position.
func (b *CorpusBuilder) Generate(ctx context.Context) ([]domain.SearchDocument, CorpusReport, error) {
	logger.Section("Corpus Generation")

	report := CorpusReport{PerSource: make(map[string]int)}
	docs := make([]domain.SearchDocument, 0)
	position := make(map[string]int)

	for _, src := range b.sources {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		name := src.Name()
		srcDocs, err := src.Documents(ctx)
		if err != nil {
			if !b.lenient {
				return nil, report, fmt.Errorf("load source %q: %w: %w", name, domain.ErrSourceFailed, err)
			}
			logger.Warn("Skipping source %q: %v", name, err)
			report.Failed = append(report.Failed, name)
			continue
		}

		for i := range srcDocs {
			doc := srcDocs[i]
			if err := doc.Validate(); err != nil {
				logger.Warn("Skipping document %d from %q: %v", i, name, err)
				report.Skipped++
				continue
			}
			if pos, ok := position[doc.ID]; ok {
				logger.Debug("Document %q from %q replaces an earlier one", doc.ID, name)
				docs[pos] = doc
				report.Replaced++
			} else {
				position[doc.ID] = len(docs)
				docs = append(docs, doc)
			}
			report.PerSource[name]++
		}
		logger.Debug("Source %q: %d documents", name, report.PerSource[name])
	}

	logger.Info("Corpus: %d documents from %d sources (%d skipped, %d replaced)",
		len(docs), len(b.sources), report.Skipped, report.Replaced)

	return docs, report, nil
}
