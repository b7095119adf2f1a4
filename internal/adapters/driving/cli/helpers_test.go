package cli

import (
	"bytes"
	"context"

	"github.com/perfecxion/sitesearch/internal/adapters/driven/content/catalog"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/content/pages"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/search/tfidf"
	"github.com/perfecxion/sitesearch/internal/adapters/driven/storage/memory"
	"github.com/perfecxion/sitesearch/internal/core/services"
)

// newTestServices wires the real core over the built-in catalog and pages.
func newTestServices() *Services {
	settings := services.NewSettingsService(memory.NewConfigStore())
	corpus := services.NewCorpusBuilder(catalog.New(""), pages.New())
	search := services.NewSearchService(tfidf.New(), corpus, memory.NewDocumentStore())

	return &Services{
		Search:   search,
		Index:    search,
		Settings: settings,
	}
}

// setupTestServices injects newTestServices. The returned function
// restores package state.
func setupTestServices() func() {
	SetServices(newTestServices())

	return func() {
		SetServices(nil)
		resetFlags()
	}
}

func resetFlags() {
	searchLimit, searchType, searchNoFuzzy, searchJSON, searchNoColor = 0, "", false, false, false
	suggestLimit, suggestJSON = 5, false
	relatedLimit, relatedJSON = 3, false
	indexJSON, historyLimit = false, 10
	documentJSON = false
	serveAddr, serveWatch = "", false
	verbose, configDir = false, ""
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

// executeWithInput is execute with stdin reading from input.
func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
