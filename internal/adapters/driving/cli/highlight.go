package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// ansiHighlighter renders matches bold yellow.
var ansiHighlighter = searchindex.Highlighter{Open: "\x1b[1;33m", Close: "\x1b[0m"}

// plainHighlighter leaves matches unmarked.
var plainHighlighter = searchindex.Highlighter{}

// highlighterFor picks snippet markers for the command being run.
// Text output to a terminal gets ANSI colour and text sent elsewhere is left
// plain. The TUI styles matches itself. Everything else keeps the default
// HTML markers.
func highlighterFor(cmd *cobra.Command) searchindex.Highlighter {
	if cmd == tuiCmd {
		return tui.Highlighter
	}
	if cmd != searchCmd || searchJSON {
		return searchindex.DefaultHighlighter
	}
	if searchNoColor || !isTerminal(cmd.OutOrStdout()) {
		return plainHighlighter
	}
	return ansiHighlighter
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
