// Package list renders ranked search results.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/core/domain"
)

const (
	// linesPerResult is the height of one entry: title, breakdown, summary
	// and keywords.
	linesPerResult = 4
	maxKeywords    = 5
)

// ResultList is a scrolling list of search results with one selected entry.
type ResultList struct {
	styles   *styles.Styles
	results  []domain.SearchResult
	selected int
	width    int
	height   int
}

// NewResultList creates an empty list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 12}
}

// Init implements tea.Model.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update moves the selection on arrow and j/k keys.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	window := max((r.height-2)/linesPerResult, 1)
	first := max(r.selected-window+1, 0)
	last := min(first+window, len(r.results))

	out := []string{r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), ""}
	for i := first; i < last; i++ {
		out = append(out, r.renderResult(i)...)
	}
	return strings.Join(out, "\n")
}

// renderResult returns the lines of result i.
func (r *ResultList) renderResult(i int) []string {
	res := r.results[i]
	titleWidth := max(r.width-20, 10)
	bodyWidth := max(r.width-6, 20)

	title := res.Document.Title()
	if title == "" {
		title = "(Untitled)"
	}
	title = fmt.Sprintf("%-*s", titleWidth, clip(title, titleWidth))
	pct := res.Scores.Percentages()
	overall := fmt.Sprintf("%6.2f%%", pct.Overall)

	var head string
	if i == r.selected {
		head = r.styles.Selected.Render("> " + title + "  " + overall)
	} else {
		head = r.styles.Normal.Render("  "+title+"  ") + r.styles.ForScore(res.Scores.Overall).Render(overall)
	}

	lines := []string{
		head,
		r.styles.Muted.Render(fmt.Sprintf("    title %.2f%%  summary %.2f%%  content %.2f%%",
			pct.Title, pct.Summary, pct.Content)),
	}

	c := res.Document.Content
	if c == nil {
		return lines
	}
	if summary := strings.Join(strings.Fields(c.Summary), " "); summary != "" {
		lines = append(lines, r.styles.Normal.Render("    "+clip(summary, bodyWidth)))
	}
	if len(c.Keywords) > 0 {
		kw := c.Keywords[:min(len(c.Keywords), maxKeywords)]
		lines = append(lines, r.styles.Keyword.Render("    "+clip(strings.Join(kw, ", "), bodyWidth)))
	}
	return lines
}

// clip shortens s to n runes, ending in "..." when there is room.
func clip(s string, n int) string {
	runes := []rune(s)
	switch {
	case len(runes) <= n:
		return s
	case n <= 3:
		return string(runes[:n])
	default:
		return string(runes[:n-3]) + "..."
	}
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the listed results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the selected index.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected selects index when it is in range.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the selected result, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp selects the previous result.
func (r *ResultList) MoveUp() {
	r.selected = max(r.selected-1, 0)
}

// MoveDown selects the next result.
func (r *ResultList) MoveDown() {
	r.selected = max(min(r.selected+1, len(r.results)-1), 0)
}

// SetDimensions sets the area available to the list.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}
