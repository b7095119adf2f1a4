package document

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/core/domain"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	docs       map[string]*domain.SearchDocument
	related    []domain.RelatedResult
	relatedErr error

	relatedLimit int
}

func (m *mockSearchService) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockSearchService) Suggest(context.Context, string, int) ([]string, error) {
	return nil, nil
}

func (m *mockSearchService) Related(_ context.Context, _ string, limit int) ([]domain.RelatedResult, error) {
	m.relatedLimit = limit
	return m.related, m.relatedErr
}

func (m *mockSearchService) Document(_ context.Context, id string) (*domain.SearchDocument, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func sampleDocument() *domain.SearchDocument {
	return &domain.SearchDocument{
		ID:          "blog-red-team",
		Title:       "Red Teaming Agents",
		Description: "How we attack our own agents.",
		Content:     "First paragraph.\nSecond paragraph.",
		URL:         "/blog/red-team",
		Type:        domain.DocumentTypeBlog,
		Category:    "security",
		Tags:        []string{"agents", "red team"},
		Date:        "2025-03-01",
	}
}

func newMock() *mockSearchService {
	return &mockSearchService{
		docs: map[string]*domain.SearchDocument{"blog-red-team": sampleDocument()},
		related: []domain.RelatedResult{
			{Document: domain.SearchDocument{ID: "blog-evals", Title: "Agent Evals", URL: "/blog/evals"}, Score: 5},
			{Document: domain.SearchDocument{ID: "docs-guard", Title: "Guard Docs", URL: "/docs/guard"}, Score: 2},
		},
	}
}

// loadedView returns a view that has finished loading the sample document.
func loadedView(t *testing.T, mock *mockSearchService) *View {
	t.Helper()
	view := NewView(styles.DefaultStyles(), mock)
	view.SetDimensions(100, 40)
	cmd := view.SetDocumentID("blog-red-team")
	require.NotNil(t, cmd)
	view.Update(cmd())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Document())
	assert.Nil(t, view.Init())
}

func TestView_SetDocumentID_Loads(t *testing.T) {
	mock := newMock()
	view := NewView(nil, mock)

	cmd := view.SetDocumentID("blog-red-team")
	assert.True(t, view.Loading())

	msg, ok := cmd().(messages.DocumentLoaded)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, "Red Teaming Agents", msg.Document.Title)
	assert.Len(t, msg.Related, 2)
	assert.Equal(t, 3, mock.relatedLimit)
}

func TestView_Loaded(t *testing.T) {
	view := loadedView(t, newMock())

	assert.False(t, view.Loading())
	assert.NoError(t, view.Err())
	require.NotNil(t, view.Document())
	assert.Equal(t, "blog-red-team", view.Document().ID)
	assert.Len(t, view.Related(), 2)
	assert.Equal(t, []string{"How we attack our own agents.", "", "First paragraph.", "Second paragraph."}, view.Lines())
}

func TestView_NotFound(t *testing.T) {
	view := NewView(nil, newMock())
	view.SetDimensions(80, 24)

	view.Update(view.SetDocumentID("missing")())

	assert.ErrorIs(t, view.Err(), domain.ErrNotFound)
	assert.Contains(t, view.View(), "Error")
}

func TestView_NoService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.SetDocumentID("x")()

	loaded, ok := msg.(messages.DocumentLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoSearchService)
}

func TestView_RelatedError_KeepsDocument(t *testing.T) {
	mock := newMock()
	mock.related = nil
	mock.relatedErr = errors.New("index rebuilding")

	view := loadedView(t, mock)

	require.NotNil(t, view.Document())
	output := view.View()
	assert.Contains(t, output, "Red Teaming Agents")
	assert.Contains(t, output, "index rebuilding")
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(nil, newMock())
	view.SetDocumentID("blog-red-team")

	assert.Contains(t, view.View(), "Loading document...")
}

func TestView_View_Loaded(t *testing.T) {
	view := loadedView(t, newMock())

	output := view.View()

	assert.Contains(t, output, "Red Teaming Agents")
	assert.Contains(t, output, "/blog/red-team")
	assert.Contains(t, output, "[blog]")
	assert.Contains(t, output, "security")
	assert.Contains(t, output, "Tags: agents, red team")
	assert.Contains(t, output, "First paragraph.")
	assert.Contains(t, output, "[1] Agent Evals")
	assert.Contains(t, output, "[2] Guard Docs")
}

func TestView_KeyDigit_OpensRelated(t *testing.T) {
	view := loadedView(t, newMock())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "docs-guard", selected.ID)
}

func TestView_KeyDigit_OutOfRange(t *testing.T) {
	view := loadedView(t, newMock())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})

	assert.Nil(t, cmd)
}

func TestView_KeyEsc_BackToSearch(t *testing.T) {
	view := loadedView(t, newMock())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
}

func TestView_Scroll(t *testing.T) {
	mock := newMock()
	mock.docs["blog-red-team"].Content = strings.Repeat("line\n", 100)
	view := loadedView(t, mock)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, view.maxScrollOffset(), view.ScrollOffset())
	assert.Contains(t, view.View(), "[100%]")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, view.visibleLines(), view.ScrollOffset())

	view.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, view.ScrollOffset())
}

func TestView_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, view.Err(), "boom")
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "short line", 20, []string{"short line"}},
		{"wraps at spaces", "one two three four", 9, []string{"one two", "three", "four"}},
		{"splits long words", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLine(tt.line, tt.width))
		})
	}
}
