package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Search as you type with completions, filter by document type, open a
result to read it with its related content, and inspect or rebuild the
index.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Open
  Tab      - Cycle type filter
  Ctrl+F   - Toggle fuzzy matching
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureIndex(cmd.Context()); err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(searchService, indexService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// Rebuild in the background while browsing when watching is on.
	if watchContent != nil && watchEnabled() {
		go func() {
			if err := watchContent(cmd.Context()); err != nil {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
