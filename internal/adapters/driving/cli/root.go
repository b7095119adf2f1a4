// Package cli implements the sitesearch command line.
//
// Commands reach the core only through driving ports. The binary's main
// package supplies a Bootstrap that wires adapters once flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/logger"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services bundles the ports the commands use.
type Services struct {
	Search   driving.SearchService
	Index    driving.IndexService
	Settings driving.SettingsService

	// Watch blocks, rebuilding the index whenever content changes.
	// Nil when there is nothing to watch.
	Watch func(ctx context.Context) error

	// Close releases stores and engines. May be nil.
	Close func() error
}

// Options are the root flag values handed to a Bootstrap.
type Options struct {
	ConfigDir   string
	Highlighter searchindex.Highlighter
}

// Bootstrap builds the services for one invocation.
type Bootstrap func(opts Options) (*Services, error)

var (
	searchService   driving.SearchService
	indexService    driving.IndexService
	settingsService driving.SettingsService
	watchContent    func(ctx context.Context) error
	closeServices   func() error

	bootstrap Bootstrap

	verbose   bool
	configDir string
)

var errServicesNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "sitesearch",
	Short: "Site search engine",
	Long: `sitesearch indexes site content (product catalog, static pages and
Markdown articles) and ranks it with TF-IDF, fuzzy term matching and
title, description and recency boosts.

Run it once from the command line, serve it over HTTP, expose it to AI
assistants over MCP, or browse it in the terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sitesearch)")
}

// SetBootstrap registers the function that wires services after flag parsing.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		searchService, indexService, settingsService = nil, nil, nil
		watchContent, closeServices = nil, nil
		return
	}
	searchService = s.Search
	indexService = s.Index
	settingsService = s.Settings
	watchContent = s.Watch
	closeServices = s.Close
}

// Execute runs the root command and releases services afterwards.
func Execute() {
	err := rootCmd.Execute()
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Closing services: %v", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// initServices runs before every command. Services that were injected
// directly are left alone.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if searchService != nil || bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{
		ConfigDir:   configDir,
		Highlighter: highlighterFor(cmd),
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

// ensureIndex loads the index unless one is already active.
func ensureIndex(ctx context.Context) error {
	if indexService == nil {
		return fmt.Errorf("index service: %w", errServicesNotConfigured)
	}
	if indexService.Stats().Generation != "" {
		return nil
	}
	if _, err := indexService.Load(ctx); err != nil {
		return fmt.Errorf("load index: %w", err)
	}
	return nil
}
