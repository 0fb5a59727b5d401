package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(in *SearchInput, text string) bool {
	_, _, changed := in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return changed
}

func TestNewSearchInput(t *testing.T) {
	in := NewSearchInput(nil, nil)

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.Equal(t, 60, in.Width())
	assert.NotNil(t, in.Init())
	assert.Contains(t, in.View(), "Search:")
}

func TestSearchInput_UpdateReportsChange(t *testing.T) {
	in := NewSearchInput(nil, nil)

	assert.True(t, typeText(in, "lease"))
	assert.Equal(t, "lease", in.Value())

	_, _, changed := in.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed, "cursor movement leaves the text alone")

	_, _, changed = in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
}

func TestSearchInput_CompletionPrefix(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"t", ""},
		{"te", "te"},
		{"breach of warr", "warr"},
		{"breach ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			in := NewSearchInput(nil, nil)
			in.SetValue(tt.value)
			assert.Equal(t, tt.want, in.CompletionPrefix())
		})
	}
}

func TestSearchInput_SetCompletions(t *testing.T) {
	in := NewSearchInput(nil, nil)
	in.SetValue("breach of Warr")

	in.SetCompletions("Warr", []string{"warranty", "warr", "indemnity"})

	assert.Equal(t, "breach of Warranty", in.Completion())
}

func TestSearchInput_SetCompletions_StalePrefix(t *testing.T) {
	in := NewSearchInput(nil, nil)
	in.SetValue("termin")

	in.SetCompletions("term", []string{"termination"})

	assert.Empty(t, in.Completion())
}

func TestSearchInput_AcceptCompletion(t *testing.T) {
	in := NewSearchInput(nil, nil)
	typeText(in, "lea")
	in.SetCompletions("lea", []string{"lease.txt"})

	_, _, changed := in.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.True(t, changed)
	assert.Equal(t, "lease.txt", in.Value())
}

func TestSearchInput_SetValueDropsCompletions(t *testing.T) {
	in := NewSearchInput(nil, nil)
	in.SetValue("con")
	in.SetCompletions("con", []string{"confidential"})
	require.NotEmpty(t, in.Completion())

	in.SetValue("con")
	assert.Empty(t, in.Completion())

	in.SetCompletions("con", []string{"confidential"})
	in.Reset()
	assert.Empty(t, in.Value())
	assert.Empty(t, in.Completion())
}

func TestSearchInput_FocusAndWidth(t *testing.T) {
	in := NewSearchInput(nil, nil)

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.SetWidth(25)
	assert.Equal(t, 25, in.Width())
	assert.Equal(t, 20, in.textinput.Width)

	in.SetWidth(100)
	assert.Equal(t, 88, in.textinput.Width)
}
