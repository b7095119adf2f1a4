// Package document provides the document view component for the TUI.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/core/ports/driving"
	"github.com/perfecxion/sitesearch/internal/searchindex"
)

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")

// View shows one document with its metadata and related documents.
type View struct {
	styles        *styles.Styles
	searchService driving.SearchService
	ctx           context.Context

	documentID   string
	document     *domain.SearchDocument
	related      []domain.RelatedResult
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new document view.
func NewView(s *styles.Styles, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocumentID clears the view and loads the document with id.
func (v *View) SetDocumentID(id string) tea.Cmd {
	v.documentID = id
	v.document = nil
	v.related = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.load(id)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// load returns a command fetching the document and its related documents.
func (v *View) load(id string) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.DocumentLoaded{Err: ErrNoSearchService}
		}

		doc, err := v.searchService.Document(v.ctx, id)
		if err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		related, err := v.searchService.Related(v.ctx, id, searchindex.DefaultRelatedLimit)
		if err != nil {
			return messages.DocumentLoaded{Document: doc, Err: err}
		}
		return messages.DocumentLoaded{Document: doc, Related: related}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.loading = false
		v.err = msg.Err
		v.document = msg.Document
		v.related = msg.Related
		v.wrapContent()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch key := msg.String(); key {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(key[0] - '1')
		if n >= len(v.related) {
			return v, nil
		}
		id := v.related[n].Document.ID
		return v, func() tea.Msg {
			return messages.DocumentSelected{ID: id}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}

	return v, nil
}

// wrapContent lays out description and content to fit the view width.
func (v *View) wrapContent() {
	v.lines = nil
	if v.document == nil {
		return
	}

	contentWidth := max(v.width-4, 20)

	var body []string
	if v.document.Description != "" {
		body = append(body, v.document.Description, "")
	}
	body = append(body, strings.Split(v.document.Content, "\n")...)

	for _, line := range body {
		v.lines = append(v.lines, wrapLine(line, contentWidth)...)
	}
}

// wrapLine breaks line at spaces so that no piece exceeds width runes.
// Words longer than width are split.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = word
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			out = append(out, string(cur))
			cur = word
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// visibleLines returns the number of body lines that can be displayed.
func (v *View) visibleLines() int {
	// Title, metadata, separator, related block and help.
	reserved := 10 + len(v.related)
	return max(v.height-reserved, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil && v.document.Title != "" {
		title = v.document.Title
	} else if v.documentID != "" {
		title = v.documentID
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	if v.loading {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil && v.document == nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.document != nil {
		b.WriteString(v.renderMeta())
	}
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString(v.renderRelated())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderMeta renders the URL, type and optional metadata of the document.
func (v *View) renderMeta() string {
	doc := v.document
	parts := []string{v.styles.Badge.Render("[" + doc.Type.String() + "]")}
	if doc.Category != "" {
		parts = append(parts, v.styles.Muted.Render(doc.Category))
	}
	if doc.Date != "" {
		parts = append(parts, v.styles.Muted.Render(doc.Date))
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(doc.URL))
	b.WriteString("\n")
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")
	if len(doc.Tags) > 0 {
		b.WriteString(v.styles.Muted.Render("Tags: " + strings.Join(doc.Tags, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRelated lists related documents with the key that opens each.
func (v *View) renderRelated() string {
	if len(v.related) == 0 {
		if v.err != nil {
			return "\n" + v.styles.Error.Render("Related: "+v.err.Error()) + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Related"))
	b.WriteString("\n")
	for i, r := range v.related {
		if i >= 9 {
			break
		}
		fmt.Fprintf(&b, "  [%d] %s %s\n", i+1, r.Document.Title, v.styles.Muted.Render(r.Document.URL))
	}
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [1-9] open related  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Document returns the current document.
func (v *View) Document() *domain.SearchDocument {
	return v.document
}

// Related returns the documents related to the current one.
func (v *View) Related() []domain.RelatedResult {
	return v.related
}

// Lines returns the wrapped body lines.
func (v *View) Lines() []string {
	return v.lines
}

// ScrollOffset returns the index of the first visible body line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Loading reports whether a document is being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
