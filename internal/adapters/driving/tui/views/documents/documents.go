// Package documents provides the documents list view component for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// Action is an entry of the per-document action menu.
type Action int

const (
	ActionShowContent Action = iota
	ActionShowDetails
	ActionReprocess
	ActionCancel
)

var actionLabels = [...]string{
	ActionShowContent: "Show content",
	ActionShowDetails: "Show details",
	ActionReprocess:   "Reprocess",
	ActionCancel:      "Cancel",
}

// Fixed column widths; the file column takes the rest.
const (
	kindWidth   = 5
	statusWidth = 10
	sizeWidth   = 9
	chromeLines = 8
)

// View lists one page of the corpus in a table.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	table      table.Model
	documents  []domain.Document
	pagination domain.Pagination
	width      int
	height     int
	err        error
	notice     string
	loading    bool

	showingMenu bool
	action      Action
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ts := table.DefaultStyles()
	ts.Header = s.Subtitle.Padding(0, 1)
	ts.Selected = s.Selected

	v := &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		table:           table.New(table.WithFocused(true), table.WithStyles(ts)),
	}
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load resets the view and fetches the first page.
func (v *View) Load() tea.Cmd {
	v.err = nil
	v.notice = ""
	v.showingMenu = false
	v.table.SetCursor(0)
	return v.loadPage(1)
}

func (v *View) loadPage(page int) tea.Cmd {
	v.loading = true
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		result, err := svc.List(ctx, driving.ListOptions{Page: page, PageSize: domain.DefaultPageSize})
		if err != nil {
			return messages.DocumentsLoaded{Err: err}
		}
		return messages.DocumentsLoaded{Documents: result.Documents, Pagination: result.Pagination}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		if v.showingMenu {
			return v, v.handleMenuKey(msg)
		}
		return v, v.handleKey(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setDocuments(msg.Documents, msg.Pagination)
		}

	case messages.DocumentReprocessed:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.notice = "Reprocessed " + msg.DocumentID
		return v, v.loadPage(max(v.pagination.Page, 1))

	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) setDocuments(docs []domain.Document, p domain.Pagination) {
	v.documents = docs
	v.pagination = p

	rows := make([]table.Row, len(docs))
	for i, doc := range docs {
		title := doc.Title()
		if title == "" {
			title = doc.ID
		}
		state := "pending"
		if doc.Processed {
			state = "processed"
		}
		rows[i] = table.Row{title, doc.Kind.String(), state, formatSize(doc.Size)}
	}
	v.table.SetRows(rows)
	v.table.SetCursor(max(v.table.Cursor(), 0))
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case key.Matches(msg, v.keymap.Open):
		if len(v.documents) > 0 {
			v.showingMenu = true
			v.action = ActionShowContent
		}
	case key.Matches(msg, v.keymap.Details):
		if doc := v.SelectedDocument(); doc != nil {
			return requestDetails(*doc)
		}
	case key.Matches(msg, v.keymap.Reprocess):
		if doc := v.SelectedDocument(); doc != nil {
			return v.reprocess(doc.ID)
		}
	case key.Matches(msg, v.keymap.NextPage):
		if v.pagination.HasNext {
			v.table.SetCursor(0)
			return v.loadPage(v.pagination.Page + 1)
		}
	case key.Matches(msg, v.keymap.PrevPage):
		if v.pagination.HasPrev {
			v.table.SetCursor(0)
			return v.loadPage(v.pagination.Page - 1)
		}
	default:
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return cmd
	}
	return nil
}

func (v *View) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.action = max(v.action-1, ActionShowContent)
	case key.Matches(msg, v.keymap.Down):
		v.action = min(v.action+1, ActionCancel)
	case key.Matches(msg, v.keymap.Back):
		v.showingMenu = false
	case key.Matches(msg, v.keymap.Open):
		v.showingMenu = false
		doc := v.SelectedDocument()
		if doc == nil {
			return nil
		}
		selected := *doc
		switch v.action {
		case ActionShowContent:
			return func() tea.Msg {
				return messages.DocumentSelected{Document: selected, Back: messages.ViewDocuments}
			}
		case ActionShowDetails:
			return requestDetails(selected)
		case ActionReprocess:
			return v.reprocess(selected.ID)
		}
	}
	return nil
}

func requestDetails(doc domain.Document) tea.Cmd {
	return func() tea.Msg {
		return messages.DetailsRequested{Document: doc, Back: messages.ViewDocuments}
	}
}

func (v *View) reprocess(docID string) tea.Cmd {
	v.notice = "Reprocessing..."
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentReprocessed{DocumentID: docID, Err: ErrNoDocumentService}
		}
		_, err := svc.Reprocess(ctx, docID)
		return messages.DocumentReprocessed{DocumentID: docID, Err: err}
	}
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", v.pagination.Total)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents found. Run processing to scan the corpus folder."))
	case v.showingMenu:
		b.WriteString(v.renderActionMenu())
		return b.String()
	default:
		b.WriteString(v.table.View())
		if p := v.pagination; p.Pages > 1 {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Page %d of %d", p.Page, p.Pages)))
		}
		if v.notice != "" {
			b.WriteString("\n")
			b.WriteString(v.styles.Success.Render("  " + v.notice))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [d] details  [r] reprocess  [/] page  [esc] back"))
	return b.String()
}

func (v *View) renderActionMenu() string {
	var b strings.Builder
	if doc := v.SelectedDocument(); doc != nil {
		b.WriteString(v.styles.Subtitle.Render("Actions for: " + doc.Title()))
		b.WriteString("\n\n")
	}
	for a, label := range actionLabels {
		if Action(a) == v.action {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SetDimensions resizes the table to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetColumns([]table.Column{
		{Title: "File", Width: max(width-kindWidth-statusWidth-sizeWidth-12, 16)},
		{Title: "Type", Width: kindWidth},
		{Title: "Status", Width: statusWidth},
		{Title: "Size", Width: sizeWidth},
	})
	v.table.SetHeight(max(height-chromeLines, 3))
}

// Documents returns the current page of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// Pagination returns the current page position.
func (v *View) Pagination() domain.Pagination {
	return v.pagination
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.table.Cursor()
}

// SelectedDocument returns the highlighted document, or nil on an empty page.
func (v *View) SelectedDocument() *domain.Document {
	if i := v.table.Cursor(); i >= 0 && i < len(v.documents) {
		return &v.documents[i]
	}
	return nil
}

// IsShowingMenu reports whether the action menu is open.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
