// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput and shows completions for the
// word being typed underneath it.
type SearchInput struct {
	textinput   textinput.Model
	styles      *styles.Styles
	width       int
	suggestions []string
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search products, articles and pages..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input and any suggestions.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	row := lipgloss.JoinHorizontal(lipgloss.Center, label, field)

	if len(s.suggestions) == 0 || !s.textinput.Focused() {
		return row
	}
	hint := s.styles.Muted.Render("  Try: " + strings.Join(s.suggestions, ", "))
	return row + "\n" + hint
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// LastWord returns the word under the cursor, the prefix suggestions complete.
func (s *SearchInput) LastWord() string {
	fields := strings.Fields(s.textinput.Value())
	if len(fields) == 0 || strings.HasSuffix(s.textinput.Value(), " ") {
		return ""
	}
	return fields[len(fields)-1]
}

// SetSuggestions replaces the completions shown below the input.
func (s *SearchInput) SetSuggestions(suggestions []string) {
	s.suggestions = suggestions
}

// Suggestions returns the completions currently shown.
func (s *SearchInput) Suggestions() []string {
	return s.suggestions
}

// Complete replaces the last word with the first suggestion.
// It reports whether anything changed.
func (s *SearchInput) Complete() bool {
	if len(s.suggestions) == 0 {
		return false
	}
	value := s.textinput.Value()
	word := s.LastWord()
	value = strings.TrimSuffix(value, word) + s.suggestions[0] + " "
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
	s.suggestions = nil
	return true
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input and its suggestions.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.suggestions = nil
}
