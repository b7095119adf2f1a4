package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/rest"
	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search HTTP API",
	Long: `Serve search, suggestions, related content and index management over HTTP.

Routes live under /api/v1 and the OpenAPI document is served at
/api/v1/openapi.json. Listen address, rate limit and CORS origins come
from the server.* settings unless --addr is given.

With --watch, or content.watch set, the index is rebuilt whenever files
under content.dir change.`,
	Example: `  sitesearch serve
  sitesearch serve --addr :9000 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	settings := domain.DefaultSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		settings = s
	}

	config := rest.ConfigFromSettings(settings.Server)
	if serveAddr != "" {
		config.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ensureIndex(ctx); err != nil {
		return err
	}

	server, err := rest.NewServer(&rest.Ports{Search: searchService, Index: indexService}, config)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", config.Addr, err)
	}

	if watchContent != nil && (serveWatch || settings.Content.Watch) {
		go func() {
			if err := watchContent(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Content watcher stopped: %v", err)
			}
		}()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s%s\n", ln.Addr(), rest.APIRoot)
	return server.Serve(ctx, ln)
}

// watchEnabled reports whether content.watch is set.
func watchEnabled() bool {
	if settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	return err == nil && settings.Content.Watch
}
