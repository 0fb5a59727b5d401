// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// DefaultPageSize is the number of results requested per page.
const DefaultPageSize = 10

// thresholdSteps are the minimum scores cycled through with the threshold
// key. Zero leaves the configured threshold in place.
var thresholdSteps = [...]float64{0, styles.FairMatch, styles.StrongMatch}

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)

	query         string
	pageSize      int
	pagination    domain.Pagination
	thresholdStep int
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s, km),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		ready:         false,
		focusInput:    true, // Start in input mode
		pageSize:      DefaultPageSize,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.CompletionsLoaded:
		if msg.Err == nil && v.focusInput {
			v.input.SetCompletions(msg.Prefix, msg.Words)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd, _ = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	// Forward to list component
	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg routes keys to the query box while typing and to the
// result list otherwise.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if key.Matches(msg, v.keymap.Search) {
			query := v.input.Value()
			if query == "" {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query, 1)
		}
		var cmd tea.Cmd
		var changed bool
		v.input, cmd, changed = v.input.Update(msg)
		if changed {
			return v, tea.Batch(cmd, v.requestCompletions())
		}
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
	case key.Matches(msg, v.keymap.Open):
		return v, v.selectionCmd(func(doc domain.Document) tea.Msg {
			return messages.DocumentSelected{Document: doc, Back: messages.ViewSearch}
		})
	case key.Matches(msg, v.keymap.Details):
		return v, v.selectionCmd(func(doc domain.Document) tea.Msg {
			return messages.DetailsRequested{Document: doc, Back: messages.ViewSearch}
		})
	case key.Matches(msg, v.keymap.NextPage):
		if v.pagination.HasNext {
			return v, v.performSearch(v.query, v.pagination.Page+1)
		}
	case key.Matches(msg, v.keymap.PrevPage):
		if v.pagination.HasPrev {
			return v, v.performSearch(v.query, v.pagination.Page-1)
		}
	case key.Matches(msg, v.keymap.Threshold):
		v.thresholdStep = (v.thresholdStep + 1) % len(thresholdSteps)
		if v.query != "" {
			return v, v.performSearch(v.query, 1)
		}
	case key.Matches(msg, v.keymap.NewSearch):
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
	}
	return v, nil
}

func (v *View) selectionCmd(build func(domain.Document) tea.Msg) tea.Cmd {
	result := v.list.SelectedResult()
	if result == nil {
		return nil
	}
	doc := result.Document
	return func() tea.Msg {
		return build(doc)
	}
}

// performSearch fetches one page of results for query.
func (v *View) performSearch(query string, page int) tea.Cmd {
	v.statusbar.SetState(status.StateSearching)
	svc, ctx := v.searchService, v.ctx
	opts := domain.SearchOptions{Page: page, PageSize: v.pageSize, Threshold: v.Threshold()}
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		resp, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Response: resp, Err: err}
	}
}

// requestCompletions asks the search service to complete the word being
// typed. Document names and keywords are offered alike.
func (v *View) requestCompletions() tea.Cmd {
	prefix := v.input.CompletionPrefix()
	svc, ctx := v.searchService, v.ctx
	if prefix == "" || svc == nil {
		return nil
	}
	return func() tea.Msg {
		suggestions, err := svc.Suggest(ctx, prefix)
		words := make([]string, 0, len(suggestions))
		for _, sg := range suggestions {
			words = append(words, sg.Text)
		}
		return messages.CompletionsLoaded{Prefix: prefix, Words: words, Err: err}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Response == nil {
		v.setError(ErrNoResponse)
		return
	}

	v.err = nil
	v.query = msg.Query
	v.pagination = msg.Response.Pagination
	v.list.SetResults(msg.Response.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Response.Results))
	v.statusbar.SetTotal(msg.Response.Pagination.Total)

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Juris")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	sections = append(sections, v.list.View())

	var footer []string
	if p := v.pagination; p.Pages > 1 {
		footer = append(footer, fmt.Sprintf("Page %d of %d  [/] change page", p.Page, p.Pages))
	}
	if t := v.Threshold(); t != nil {
		footer = append(footer, fmt.Sprintf("min score %.0f%%", domain.Percent(*t)))
	}
	if len(footer) > 0 {
		sections = append(sections, "", v.styles.Muted.Render(strings.Join(footer, "  ·  ")))
	}

	v.statusbar.SetTyping(v.focusInput)
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // Reserve space for header, input, pager, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// Pagination returns the page of the last completed search.
func (v *View) Pagination() domain.Pagination {
	return v.pagination
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.query = ""
	v.pagination = domain.Pagination{}
	v.err = nil
	v.statusbar.Clear()
}

// Threshold returns the minimum score chosen with the threshold key, or nil
// when the configured default applies.
func (v *View) Threshold() *float64 {
	t := thresholdSteps[v.thresholdStep]
	if t == 0 {
		return nil
	}
	return &t
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
