// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/components/input"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/components/list"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/components/status"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/keymap"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	// typeIndex selects from filterTypes; zero means all types.
	typeIndex   int
	filterTypes []domain.DocumentType
	fuzzy       bool
	lastQuery   string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		filterTypes:   append([]domain.DocumentType{""}, domain.DocumentTypes()...),
		fuzzy:         true,
		width:         80,
		height:        24,
		focusInput:    true,
	}
	v.statusbar.SetTyping(true)
	v.statusbar.SetFilter(v.filterLabel())
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.SuggestionsLoaded:
		// Drop completions for a word the user has since changed.
		if msg.Err == nil && msg.Prefix == v.input.LastWord() {
			v.input.SetSuggestions(msg.Suggestions)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.TypeFilter):
		v.typeIndex = (v.typeIndex + 1) % len(v.filterTypes)
		v.statusbar.SetFilter(v.filterLabel())
		return v, v.rerun()
	case keymap.Matches(msg.String(), v.keymap.Fuzzy):
		v.fuzzy = !v.fuzzy
		v.statusbar.SetFilter(v.filterLabel())
		return v, v.rerun()
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	// Results mode: Enter opens the selected document
	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		id := result.Document.ID
		return v, func() tea.Msg {
			return messages.DocumentSelected{ID: id}
		}
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n":
		v.focusInput = true
		v.input.Focus()
		v.input.Reset()
		v.statusbar.SetTyping(true)
	}

	return v, nil
}

// handleInputKey processes keys while the query is being typed.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false // Move to results mode after search
		v.input.Blur()
		v.statusbar.SetTyping(false)
		return v, v.performSearch(query)
	}

	if keymap.Matches(msg.String(), v.keymap.Complete) {
		v.input.Complete()
		return v, nil
	}

	before := v.input.LastWord()
	v.input, _ = v.input.Update(msg)
	word := v.input.LastWord()
	if word == before {
		return v, nil
	}
	v.input.SetSuggestions(nil)
	if len([]rune(word)) < searchindex.MinSuggestLength {
		return v, nil
	}
	return v, v.fetchSuggestions(word)
}

// rerun repeats the last search with the current options.
func (v *View) rerun() tea.Cmd {
	if v.lastQuery == "" || v.focusInput {
		return nil
	}
	v.statusbar.SetState(status.StateSearching)
	return v.performSearch(v.lastQuery)
}

// options builds search options from the active filters.
func (v *View) options() domain.SearchOptions {
	return domain.SearchOptions{
		Type:         v.filterTypes[v.typeIndex],
		DisableFuzzy: !v.fuzzy,
	}
}

// filterLabel describes the active search options for the status bar.
func (v *View) filterLabel() string {
	docType := "all"
	if t := v.filterTypes[v.typeIndex]; t != "" {
		docType = t.String()
	}
	fuzzy := "on"
	if !v.fuzzy {
		fuzzy = "off"
	}
	return fmt.Sprintf("type: %s | fuzzy: %s", docType, fuzzy)
}

// performSearch executes a search and returns results.
func (v *View) performSearch(query string) tea.Cmd {
	v.lastQuery = query
	opts := v.options()
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		started := time.Now()
		results, err := v.searchService.Search(v.ctx, query, opts)
		if err != nil {
			return messages.SearchCompleted{Query: query, Err: err}
		}
		return messages.SearchCompleted{Query: query, Results: results, Elapsed: time.Since(started)}
	}
}

// fetchSuggestions asks the service for completions of word.
func (v *View) fetchSuggestions(word string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.SuggestionsLoaded{Prefix: word, Err: ErrNoSearchService}
		}
		suggestions, err := v.searchService.Suggest(v.ctx, word, searchindex.DefaultSuggestLimit)
		return messages.SuggestionsLoaded{Prefix: word, Suggestions: suggestions, Err: err}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	v.statusbar.SetSearch(msg.Query, msg.Elapsed)

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetTyping(false)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Site Search")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	sections = append(sections, v.list.View())

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Suggestions returns the completions shown under the input.
func (v *View) Suggestions() []string {
	return v.input.Suggestions()
}

// Options returns the search options the next query will use.
func (v *View) Options() domain.SearchOptions {
	return v.options()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode. Filters are kept.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.list.SetResults(nil)
	v.err = nil
	v.lastQuery = ""
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.statusbar.SetTyping(true)
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
