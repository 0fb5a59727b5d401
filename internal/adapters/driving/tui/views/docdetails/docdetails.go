// Package docdetails provides the document details view component for the TUI.
package docdetails

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// SimilarLimit caps the related documents listed.
const SimilarLimit = 5

var (
	// ErrNoDocumentService indicates that no document service was provided.
	ErrNoDocumentService = errors.New("document service not available")

	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service not available")
)

// View is the document details view.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	searchService   driving.SearchService
	ctx             context.Context

	document     *domain.Document
	back         messages.ViewType
	similar      []domain.SimilarDocument
	similarErr   error
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new document details view.
func NewView(s *styles.Styles, documentService driving.DocumentService, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		searchService:   searchService,
		ctx:             context.Background(),
		back:            messages.ViewDocuments,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument shows doc and loads its content and related documents.
func (v *View) SetDocument(doc domain.Document, back messages.ViewType) tea.Cmd {
	v.document = &doc
	v.back = back
	v.similar = nil
	v.similarErr = nil
	v.scrollOffset = 0
	v.err = nil
	return tea.Batch(v.loadDocument(doc.ID), v.loadSimilar(doc.ID))
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) loadDocument(id string) tea.Cmd {
	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		doc, err := svc.Get(ctx, id)
		return messages.DocumentLoaded{DocumentID: id, Document: doc, Err: err}
	}
}

func (v *View) loadSimilar(id string) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SimilarLoaded{DocumentID: id, Err: ErrNoSearchService}
		}
		similar, err := svc.Similar(ctx, id, nil, SimilarLimit)
		return messages.SimilarLoaded{DocumentID: id, Similar: similar, Err: err}
	}
}

// Update handles messages for the document details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if !v.current(msg.DocumentID) {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
		} else if msg.Document != nil {
			v.document = msg.Document
		}
		return v, nil

	case messages.SimilarLoaded:
		if !v.current(msg.DocumentID) {
			return v, nil
		}
		v.similar = msg.Similar
		v.similarErr = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// current reports whether id belongs to the displayed document.
func (v *View) current(id string) bool {
	return v.document != nil && v.document.ID == id
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	doc := v.document
	if doc == nil {
		return nil
	}

	lines := []string{
		v.formatField("ID", doc.ID),
		v.formatField("File", doc.Filename),
		v.formatField("Path", doc.FilePath),
		v.formatField("Type", doc.Kind.String()),
		v.formatField("Size", fmt.Sprintf("%d bytes", doc.Size)),
		v.formatField("Processed", fmt.Sprintf("%t", doc.Processed)),
	}

	if !doc.CreatedAt.IsZero() {
		lines = append(lines, v.formatField("Created", doc.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if !doc.UpdatedAt.IsZero() {
		lines = append(lines, v.formatField("Updated", doc.UpdatedAt.Format("2006-01-02 15:04:05")))
	}

	if c := doc.Content; c != nil {
		lines = append(lines, v.formatField("Words", fmt.Sprintf("%d", c.WordCount)))

		if c.Summary != "" {
			lines = append(lines, "", "Summary:")
			for _, l := range wrap(c.Summary, max(v.width-6, 20)) {
				lines = append(lines, "  "+l)
			}
		}

		if len(c.Keywords) > 0 {
			keywords := append([]string(nil), c.Keywords...)
			sort.Strings(keywords)
			lines = append(lines, "", "Keywords:")
			for _, l := range wrap(strings.Join(keywords, ", "), max(v.width-6, 20)) {
				lines = append(lines, "  "+l)
			}
		}
	}

	lines = append(lines, "", "Similar documents:")
	switch {
	case v.similarErr != nil:
		lines = append(lines, "  unavailable ("+v.similarErr.Error()+")")
	case len(v.similar) == 0:
		lines = append(lines, "  none above threshold")
	default:
		for _, sd := range v.similar {
			lines = append(lines, fmt.Sprintf("  %6.2f%%  %s", domain.Percent(sd.Similarity), sd.Document.Title()))
		}
	}

	return lines
}

// wrap splits s into lines of at most width runes at word boundaries.
func wrap(s string, width int) []string {
	var out []string
	var cur strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			out = append(out, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		out = append(out, cur.String())
	}
	return out
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

var sectionHeadings = map[string]bool{
	"Summary:":           true,
	"Keywords:":          true,
	"Similar documents:": true,
}

// View renders the document details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n")

	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 0)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.document == nil {
		b.WriteString(v.styles.Muted.Render("No document details available"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visibleLines := v.visibleLines()
	section := ""
	for i := 0; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		line := lines[i]
		if sectionHeadings[line] {
			section = line
		}
		if i < v.scrollOffset {
			continue
		}

		switch {
		case sectionHeadings[line]:
			b.WriteString(v.styles.Subtitle.Render(line))
		case strings.HasPrefix(line, "  ") && section == "Keywords:":
			b.WriteString(v.styles.Keyword.Render(line))
		case strings.HasPrefix(line, "  ") && section == "Similar documents:":
			b.WriteString(v.styles.Score.Render(line))
		case strings.HasPrefix(line, "  "):
			b.WriteString(v.styles.Normal.Render(line))
		case strings.Contains(line, ":"):
			parts := strings.SplitN(line, ":", 2)
			b.WriteString(v.styles.Subtitle.Render(parts[0] + ":"))
			b.WriteString(v.styles.Normal.Render(parts[1]))
		default:
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Document returns the displayed document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Similar returns the related documents loaded for the current document.
func (v *View) Similar() []domain.SimilarDocument {
	return v.similar
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
