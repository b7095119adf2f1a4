// Package menu provides the start screen of the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/messages"
	"github.com/perfecxion/sitesearch/internal/adapters/driving/tui/styles"
)

// DefaultSubtitle is shown until index statistics are known.
const DefaultSubtitle = "Products, articles and pages"

// Item is one menu entry. Shortcut opens it directly from anywhere in the menu.
type Item struct {
	Label    string
	Hint     string
	Shortcut string
	View     messages.ViewType
	Quit     bool
}

// View lists the top-level screens.
type View struct {
	styles   *styles.Styles
	items    []Item
	subtitle string
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu with the Search entry selected.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Search", Hint: "find products, articles and pages", Shortcut: "/", View: messages.ViewSearch},
			{Label: "Index", Hint: "statistics, build history and rebuild", Shortcut: "i", View: messages.ViewIndex},
			{Label: "Help", Hint: "key bindings", Shortcut: "?", View: messages.ViewHelp},
			{Label: "Quit", Shortcut: "q", Quit: true},
		},
		subtitle: DefaultSubtitle,
		width:    80,
		height:   24,
	}
}

// Init implements the view lifecycle; the menu loads nothing.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the selection and opens entries.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "up", "k", "shift+tab":
			v.selected = (v.selected - 1 + len(v.items)) % len(v.items)
		case "down", "j", "tab":
			v.selected = (v.selected + 1) % len(v.items)
		case "home", "g":
			v.selected = 0
		case "end", "G":
			v.selected = len(v.items) - 1
		case "enter":
			return v, v.open(v.items[v.selected])
		default:
			for i, item := range v.items {
				if item.Shortcut == key {
					v.selected = i
					return v, v.open(item)
				}
			}
		}
	}

	return v, nil
}

func (v *View) open(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Site Search"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.subtitle))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, item := range v.items {
		labelWidth = max(labelWidth, len(item.Label))
	}

	for i, item := range v.items {
		label := fmt.Sprintf("%-*s", labelWidth, item.Label)
		line := "  " + v.styles.Normal.Render(label)
		if i == v.selected {
			line = "> " + v.styles.Selected.Render(label)
		}
		if item.Hint != "" {
			line += "  " + v.styles.Muted.Render(item.Hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] open  [/] search  [i] index  [?] help  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetSubtitle replaces the line under the title, usually with index statistics.
func (v *View) SetSubtitle(subtitle string) {
	v.subtitle = subtitle
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the selected entry index.
func (v *View) Selected() int {
	return v.selected
}
