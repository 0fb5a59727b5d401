// Package input provides the query box used by the search view.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
)

// MinCompletionRunes is the shortest trailing word that asks for completions.
const MinCompletionRunes = 2

// SearchInput is a single-line query box with inline completion of the
// trailing word.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused query box. km.Complete accepts the
// shown completion.
func NewSearchInput(s *styles.Styles, km *keymap.KeyMap) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "indemnification, termination for convenience..."
	ti.CharLimit = 256
	ti.ShowSuggestions = true
	ti.CompletionStyle = s.Muted
	ti.KeyMap.AcceptSuggestion = km.Complete
	ti.Focus()

	in := &SearchInput{textinput: ti, styles: s}
	in.SetWidth(60)
	return in
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the text box. changed reports whether the query
// text differs afterwards.
func (s *SearchInput) Update(msg tea.Msg) (in *SearchInput, cmd tea.Cmd, changed bool) {
	before := s.textinput.Value()
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd, s.textinput.Value() != before
}

// View renders the label and query box.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	box := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the query text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the query text and drops stale completions.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.textinput.SetSuggestions(nil)
}

// Focus gives the box keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused reports whether the box has focus.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth fits the box into width columns beside its label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-12, 20)
}

// Width returns the width last set.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query and completions.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.textinput.SetSuggestions(nil)
}

// CompletionPrefix returns the trailing word of the query when it is long
// enough to complete, or "".
func (s *SearchInput) CompletionPrefix() string {
	_, word := splitLastWord(s.textinput.Value())
	if utf8.RuneCountInString(word) < MinCompletionRunes {
		return ""
	}
	return word
}

// SetCompletions offers words as completions of the trailing word typed
// as prefix. Results for an outdated prefix are ignored, as are words that
// do not start with it.
func (s *SearchInput) SetCompletions(prefix string, words []string) {
	head, word := splitLastWord(s.textinput.Value())
	if word != prefix {
		return
	}
	lower := strings.ToLower(word)
	n := utf8.RuneCountInString(word)
	full := make([]string, 0, len(words))
	for _, w := range words {
		if !strings.HasPrefix(strings.ToLower(w), lower) || strings.EqualFold(w, word) {
			continue
		}
		// Keep what was typed and complete with the rest of w.
		full = append(full, head+word+string([]rune(w)[n:]))
	}
	s.textinput.SetSuggestions(full)
}

// Completion returns the query the box would hold after accepting the
// current completion, or "" when none is shown.
func (s *SearchInput) Completion() string {
	return s.textinput.CurrentSuggestion()
}

// splitLastWord splits v before its final space-separated word.
func splitLastWord(v string) (head, word string) {
	i := strings.LastIndexAny(v, " \t")
	return v[:i+1], v[i+1:]
}
