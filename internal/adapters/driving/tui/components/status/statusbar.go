// Package status renders the one-line footer of the search view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
)

// State is what the footer reports on its left side.
type State string

const (
	StateReady      State = "ready"
	StateSearching  State = "searching"
	StateError      State = "error"
	StateHelp       State = "help"
	StateResults    State = "results"
	StateLoading    State = "loading"
	StateProcessing State = "processing"
)

// busyLabels are the fixed captions of transient states.
var busyLabels = map[State]string{
	StateSearching:  "Searching...",
	StateLoading:    "Loading...",
	StateProcessing: "Processing corpus...",
}

// Bar shows the current state on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int

	state       State
	message     string
	resultCount int
	total       int
	typing      bool
}

// NewBar creates a footer in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, width: 80, state: StateReady}
}

// Init implements tea.Model.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the footer padded to the bar width.
func (s *Bar) View() string {
	left, right := s.renderLeft(), s.renderRight()
	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	if label, ok := busyLabels[s.state]; ok {
		return s.styles.Muted.Render(label)
	}

	switch s.state {
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateHelp:
		return s.styles.Normal.Render("Help")
	}

	switch {
	case s.resultCount > 0 && s.total > s.resultCount:
		return s.styles.Normal.Render(fmt.Sprintf("%d of %d results", s.resultCount, s.total))
	case s.resultCount > 0:
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.resultCount))
	case s.message != "":
		return s.styles.Success.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.state == StateResults && s.resultCount > 0:
		bindings = s.keymap.ResultsHelp()
	case s.state == StateReady && s.typing:
		bindings = s.keymap.InputHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		hints[i] = h.Key + ": " + h.Desc
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the reported state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the reported state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the error text or the idle status line.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the message last set.
func (s *Bar) Message() string { return s.message }

// SetResultCount sets the number of results on the current page.
func (s *Bar) SetResultCount(count int) { s.resultCount = count }

// ResultCount returns the number of results on the current page.
func (s *Bar) ResultCount() int { return s.resultCount }

// SetTotal sets the number of matches across all pages.
func (s *Bar) SetTotal(total int) { s.total = total }

// Total returns the number of matches across all pages.
func (s *Bar) Total() int { return s.total }

// SetTyping switches the hints to the query box bindings.
func (s *Bar) SetTyping(typing bool) { s.typing = typing }

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the bar width.
func (s *Bar) Width() int { return s.width }

// Clear returns the bar to the ready state. The typing flag is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
	s.total = 0
}
