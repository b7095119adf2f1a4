// Package index provides the index status view for the TUI.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
)

// HistoryLimit is the number of builds shown.
const HistoryLimit = 5

// ErrNoIndexService indicates that no index service was provided.
var ErrNoIndexService = errors.New("index service is required")

// View shows statistics of the active index and recent builds.
type View struct {
	styles       *styles.Styles
	indexService driving.IndexService
	ctx          context.Context

	stats      domain.IndexStats
	history    []domain.BuildRecord
	rebuilding bool
	message    string
	err        error
	width      int
	height     int
}

// NewView creates a new index view.
func NewView(s *styles.Styles, indexService driving.IndexService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		indexService: indexService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads statistics and history.
func (v *View) Init() tea.Cmd {
	v.message = ""
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.indexService == nil {
			return messages.IndexLoaded{Err: ErrNoIndexService}
		}
		history, err := v.indexService.History(v.ctx, HistoryLimit)
		return messages.IndexLoaded{Stats: v.indexService.Stats(), History: history, Err: err}
	}
}

func (v *View) rebuild() tea.Cmd {
	return func() tea.Msg {
		if v.indexService == nil {
			return messages.IndexRebuilt{Err: ErrNoIndexService}
		}
		stats, err := v.indexService.Rebuild(v.ctx)
		return messages.IndexRebuilt{Stats: stats, Err: err}
	}
}

// Update handles messages for the index view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if v.rebuilding {
				return v, nil
			}
			v.rebuilding = true
			v.message = "Rebuilding..."
			v.err = nil
			return v, v.rebuild()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.IndexLoaded:
		v.err = msg.Err
		v.stats = msg.Stats
		v.history = msg.History
		return v, nil

	case messages.IndexRebuilt:
		v.rebuilding = false
		if msg.Err != nil {
			v.err = msg.Err
			v.message = ""
		} else {
			v.stats = msg.Stats
			v.message = fmt.Sprintf("Rebuilt: %d documents in %s", msg.Stats.Documents, msg.Stats.Duration.Round(time.Millisecond))
		}
		// History gained an entry either way.
		return v, v.load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the index view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Index"))
	b.WriteString("\n\n")

	if v.stats.Generation == "" {
		b.WriteString(v.styles.Muted.Render("No index built yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.renderStats())
	}

	if len(v.history) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Recent builds"))
		b.WriteString("\n")
		for _, r := range v.history {
			b.WriteString(v.renderBuild(r))
			b.WriteString("\n")
		}
	}

	if v.message != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[r] rebuild  [esc] back"))
	return b.String()
}

func (v *View) renderStats() string {
	s := v.stats
	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "  %-12s %s\n", label+":", value)
	}

	row("Generation", s.Generation)
	row("Engine", s.Engine)
	row("Documents", fmt.Sprintf("%d", s.Documents))
	if s.Terms > 0 {
		row("Terms", fmt.Sprintf("%d", s.Terms))
	}
	row("Built", s.BuiltAt.Local().Format(time.DateTime))
	row("Took", s.Duration.Round(time.Millisecond).String())

	types := make([]string, 0, len(s.ByType))
	for _, t := range domain.DocumentTypes() {
		if n := s.ByType[t]; n > 0 {
			types = append(types, fmt.Sprintf("%s %d", t, n))
		}
	}
	if len(types) > 0 {
		row("Types", strings.Join(types, ", "))
	}

	categories := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for i, c := range categories {
		categories[i] = fmt.Sprintf("%s %d", c, s.ByCategory[c])
	}
	if len(categories) > 0 {
		row("Categories", strings.Join(categories, ", "))
	}
	return b.String()
}

func (v *View) renderBuild(r domain.BuildRecord) string {
	when := r.StartedAt.Local().Format(time.DateTime)
	if !r.Succeeded() {
		return "  " + when + "  " + v.styles.Error.Render("failed: "+r.Error)
	}
	return fmt.Sprintf("  %s  %s  %d documents  %s",
		when, r.Engine, r.Documents, r.Duration.Round(time.Millisecond))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Stats returns the statistics shown.
func (v *View) Stats() domain.IndexStats {
	return v.stats
}

// History returns the builds shown.
func (v *View) History() []domain.BuildRecord {
	return v.history
}

// Rebuilding reports whether a rebuild is in progress.
func (v *View) Rebuilding() bool {
	return v.rebuilding
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
