package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/views/document"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/views/index"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/views/menu"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/views/search"
	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	searchView   *search.View
	documentView *document.View
	indexView    *index.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// query, results and selectedIndex mirror the search view.
	query         string
	results       []domain.SearchResult
	selectedIndex int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, nil, ports.Search),
		documentView: document.NewView(s, ports.Search),
		indexView:    index.NewView(s, ports.Index),
		currentView:  messages.ViewMenu, // Start with menu
	}
	if ports.Index != nil {
		app.menuView.SetSubtitle(indexSubtitle(ports.Index.Stats()))
	}
	return app, nil
}

// indexSubtitle summarises the active index for the menu.
func indexSubtitle(stats domain.IndexStats) string {
	if stats.Generation == "" {
		return "No index built yet"
	}
	return fmt.Sprintf("%d documents indexed with %s", stats.Documents, stats.Engine)
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.documentView.WithContext(ctx)
	a.indexView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sitesearch"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.documentView.SetDimensions(msg.Width, msg.Height)
		a.indexView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.syncSearchState()
			return a, cmd

		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
			return a, cmd

		case messages.ViewIndex:
			a.indexView, cmd = a.indexView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.syncSearchState()
		a.selectedIndex = 0
		return a, cmd

	case messages.SuggestionsLoaded:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		previous := a.currentView
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			// Returning from a document keeps the results.
			if previous == messages.ViewDocument {
				return a, nil
			}
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewIndex:
			return a, a.indexView.Init()
		case messages.ViewMenu:
			if a.ports.Index != nil {
				a.menuView.SetSubtitle(indexSubtitle(a.ports.Index.Stats()))
			}
		case messages.ViewHelp, messages.ViewDocument:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocument
		return a, a.documentView.SetDocumentID(msg.ID)

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.IndexLoaded, messages.IndexRebuilt:
		a.indexView, cmd = a.indexView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewDocument:
			a.documentView, cmd = a.documentView.Update(msg)
		case messages.ViewIndex:
			a.indexView, cmd = a.indexView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewIndex:
		a.indexView, cmd = a.indexView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// syncSearchState copies search view state for the accessors.
func (a *App) syncSearchState() {
	a.query = a.searchView.Query()
	a.results = a.searchView.Results()
	a.selectedIndex = a.searchView.SelectedIndex()
	a.err = a.searchView.Err()
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	case messages.ViewIndex:
		return a.indexView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  / i ?       Open search, index, help
  q           Quit

Search:
  (type)      Enter search query
  ctrl+n      Accept suggestion
  tab         Cycle document type filter
  ctrl+f      Toggle fuzzy matching
  enter       Submit search

Results:
  j/k, ↑/↓    Navigate results
  enter       Open document
  n           New search

Document:
  ↑/↓, g/G    Scroll
  1-9         Open related document

Index:
  r           Rebuild

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.query
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.results
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.selectedIndex
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
	a.indexView.SetDimensions(width, height)
}
