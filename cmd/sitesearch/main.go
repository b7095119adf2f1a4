// Command sitesearch indexes and searches site content.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/perfecxion/sitesearch/internal/adapters/driven/config/file"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/content/catalog"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/content/markdown"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/content/pages"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/search/fulltext"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/search/tfidf"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/storage/memory"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/storage/sqlite"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/cli"
	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/core/services"
	"github.com/perfecxion/sitesearch/internal/logger"
)

func main() {
	cli.SetBootstrap(bootstrap)
	cli.Execute()
}

// bootstrap wires adapters into the core according to the settings.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Reading .env: %v", err)
	}

	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	engine := newEngine(settings.Search.Engine)
	logger.Debug("Search engine: %s", engine.Name())

	store, buildLog, err := newStore(settings.Storage, dir)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}

	corpus := services.NewCorpusBuilder(catalog.New(settings.Content.Catalog), pages.New())
	corpus.SetLenient(settings.Content.Lenient)
	if settings.Content.Dir != "" {
		corpus.AddSource(markdown.New(settings.Content.Dir))
	}

	searchService := services.NewSearchService(engine, corpus, store)
	searchService.SetSearchSettings(settings.Search)
	searchService.SetHighlighter(opts.Highlighter)
	if buildLog != nil {
		searchService.SetBuildLog(buildLog)
	}

	var watch func(ctx context.Context) error
	if settings.Content.Dir != "" {
		reindexer := services.NewReindexer(searchService, markdown.NewWatcher(settings.Content.Dir))
		watch = reindexer.Run
	}

	return &cli.Services{
		Search:   searchService,
		Index:    searchService,
		Settings: settingsService,
		Watch:    watch,
		Close: func() error {
			return errors.Join(engine.Close(), store.Close())
		},
	}, nil
}

func newEngine(kind domain.SearchEngineKind) driven.SearchEngine {
	if kind == domain.SearchEngineBleve {
		return fulltext.New()
	}
	return tfidf.New()
}

// newStore opens the corpus store. Only SQLite keeps a build log.
func newStore(s domain.StorageSettings, configDir string) (driven.DocumentStore, driven.BuildLog, error) {
	if s.Backend != domain.StorageSQLite {
		return memory.NewDocumentStore(), nil, nil
	}

	dataDir := s.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, store.BuildLog(), nil
}
