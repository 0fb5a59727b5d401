package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func readyView() *View {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)
	return v
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(nil, nil)
	require.NotNil(t, v.styles)
	require.NotNil(t, v.keymap)
	assert.Equal(t, DefaultItems(), v.items)
	assert.Equal(t, 0, v.Selected())
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestDefaultItems_UniqueShortcuts(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range DefaultItems() {
		assert.False(t, seen[item.Shortcut], item.Shortcut)
		seen[item.Shortcut] = true
	}
}

func TestView_NavigationClamps(t *testing.T) {
	v := readyView()
	last := len(v.items) - 1

	for range last + 2 {
		v.Update(runes("j"))
	}
	assert.Equal(t, last, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, last-1, v.Selected())

	for range last + 2 {
		v.Update(runes("k"))
	}
	assert.Equal(t, 0, v.Selected())
}

func TestView_EnterChoosesSelection(t *testing.T) {
	tests := []struct {
		index int
		want  tea.Msg
	}{
		{0, messages.ViewChanged{View: messages.ViewSearch}},
		{1, messages.ViewChanged{View: messages.ViewDocuments}},
		{2, messages.ProcessRequested{}},
		{3, messages.ViewChanged{View: messages.ViewHelp}},
		{4, tea.QuitMsg{}},
	}
	for _, tt := range tests {
		v := readyView()
		v.selected = tt.index
		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.Equal(t, tt.want, cmd(), "item %d", tt.index)
	}
}

func TestView_Shortcuts(t *testing.T) {
	v := readyView()

	_, cmd := v.Update(runes("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
	assert.Equal(t, 1, v.Selected())

	_, cmd = v.Update(runes("p"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ProcessRequested{}, cmd())

	_, cmd = v.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = v.Update(runes("x"))
	assert.Nil(t, cmd)
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil)
	_, cmd := v.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.Nil(t, cmd)
	assert.True(t, v.ready)
	assert.Equal(t, 100, v.width)
	assert.Equal(t, 50, v.height)
}

func TestView_Render(t *testing.T) {
	v := readyView()
	out := v.View()
	assert.Contains(t, out, "Legal Document Search")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "[p] Process documents")
	assert.Contains(t, out, "analyse new files")

	v.SetDimensions(40, 24)
	assert.NotContains(t, v.View(), "analyse new files")
}

func TestView_Status(t *testing.T) {
	v := readyView()
	assert.NotContains(t, v.View(), "processed")

	v.SetStatus("3 of 4 documents processed")
	assert.Contains(t, v.View(), "3 of 4 documents processed")
}
