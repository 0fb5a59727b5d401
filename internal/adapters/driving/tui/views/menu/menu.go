// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
)

// Action is what choosing a menu entry does.
type Action int

const (
	// ActionView switches to the entry's view.
	ActionView Action = iota
	// ActionProcess starts a corpus processing run.
	ActionProcess
	// ActionQuit leaves the application.
	ActionQuit
)

// Item is a single menu entry. Shortcut selects it directly.
type Item struct {
	Label    string
	Hint     string
	Shortcut string
	Action   Action
	View     messages.ViewType
}

// DefaultItems returns the entries of the main menu.
func DefaultItems() []Item {
	return []Item{
		{Label: "Search", Hint: "rank documents against a query", Shortcut: "s", View: messages.ViewSearch},
		{Label: "Documents", Hint: "browse the corpus", Shortcut: "d", View: messages.ViewDocuments},
		{Label: "Process documents", Hint: "analyse new files", Shortcut: "p", Action: ActionProcess},
		{Label: "Help", Hint: "key bindings", Shortcut: "?", View: messages.ViewHelp},
		{Label: "Quit", Shortcut: "q", Action: ActionQuit},
	}
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
	status   string
}

// NewView creates the menu with DefaultItems.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		items:  DefaultItems(),
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.selected = max(v.selected-1, 0)
		case key.Matches(msg, v.keymap.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case key.Matches(msg, v.keymap.Open):
			return v, v.choose(v.items[v.selected])
		default:
			for i, item := range v.items {
				if msg.String() == item.Shortcut {
					v.selected = i
					return v, v.choose(item)
				}
			}
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch item.Action {
	case ActionQuit:
		return tea.Quit
	case ActionProcess:
		return func() tea.Msg { return messages.ProcessRequested{} }
	default:
		target := item.View
		return func() tea.Msg { return messages.ViewChanged{View: target} }
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Juris"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Legal Document Search"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor, style := "  ", v.styles.Normal
		if i == v.selected {
			cursor, style = "> ", v.styles.Selected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s", item.Shortcut, item.Label)))
		if item.Hint != "" && v.width >= 60 {
			b.WriteString(v.styles.Muted.Render("  " + item.Hint))
		}
		b.WriteString("\n")
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] select  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the index of the highlighted entry.
func (v *View) Selected() int {
	return v.selected
}

// SetStatus sets the line shown below the menu, such as corpus progress.
func (v *View) SetStatus(status string) {
	v.status = status
}
