// Package doccontent provides the document content view component for the TUI.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// chromeLines is the height taken by the title, rule, position and help.
const chromeLines = 6

// View shows the extracted text of one document in a scrollable pane.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	ctx             context.Context

	viewport viewport.Model
	document *domain.Document
	back     messages.ViewType
	content  string
	lines    []string
	err      error
	loading  bool
}

// NewView creates a new document content view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:          s,
		documentService: documentService,
		ctx:             context.Background(),
		back:            messages.ViewDocuments,
		viewport:        viewport.New(80, 24-chromeLines),
	}
	v.viewport.Style = s.Normal
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument shows doc and loads its text. Esc returns to back.
func (v *View) SetDocument(doc domain.Document, back messages.ViewType) tea.Cmd {
	v.document = &doc
	v.back = back
	v.content = ""
	v.err = nil
	v.setLines(nil)
	v.loading = true

	svc, ctx, id := v.documentService, v.ctx, doc.ID
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		loaded, err := svc.Get(ctx, id)
		return messages.DocumentLoaded{DocumentID: id, Document: loaded, Err: err}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			back := v.back
			return v, func() tea.Msg { return messages.ViewChanged{View: back} }
		case "home", "g":
			v.viewport.GotoTop()
		case "end", "G":
			v.viewport.GotoBottom()
		default:
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}

	case messages.DocumentLoaded:
		if v.document == nil || msg.DocumentID != v.document.ID {
			return v, nil
		}
		v.loading = false
		switch {
		case msg.Err != nil:
			v.err = msg.Err
		case msg.Document == nil || msg.Document.Content == nil:
			v.err = domain.ErrNoContent
		default:
			v.document = msg.Document
			v.content = msg.Document.Content.RawText
			v.rewrap()
		}

	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

func (v *View) rewrap() {
	if v.content == "" {
		v.setLines(nil)
		return
	}
	width := max(v.viewport.Width-2, 20)
	var lines []string
	for _, raw := range strings.Split(v.content, "\n") {
		lines = append(lines, wrapLine(strings.TrimRight(raw, " \t\r"), width)...)
	}
	v.setLines(lines)
}

func (v *View) setLines(lines []string) {
	v.lines = lines
	v.viewport.SetContent(strings.Join(lines, "\n"))
	v.viewport.GotoTop()
}

// wrapLine breaks line at word boundaries so no piece exceeds width runes.
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
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= width:
			cur = append(cur, ' ')
			cur = append(cur, word...)
		default:
			out = append(out, string(cur))
			cur = append([]rune(nil), word...)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document Content"
	if v.document != nil {
		title = v.document.Title()
		if title == "" {
			title = v.document.ID
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.viewport.Width-4, 60), 0)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		b.WriteString(v.viewport.View())
		if total := len(v.lines); total > v.viewport.Height {
			first := v.viewport.YOffset + 1
			last := min(v.viewport.YOffset+v.viewport.Height, total)
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%3.f%%] Line %d-%d of %d",
				v.viewport.ScrollPercent()*100, first, last, total)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// SetDimensions resizes the text pane and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeLines, 1)
	v.rewrap()
}

// Document returns the current document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Content returns the document text.
func (v *View) Content() string {
	return v.content
}

// Lines returns the wrapped text.
func (v *View) Lines() []string {
	return v.lines
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.viewport.YOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
