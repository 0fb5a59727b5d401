package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/views/docdetails"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/juris/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/juris/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView       *menu.View
	searchView     *search.View
	documentsView  *documents.View
	docContentView *doccontent.View
	docDetailsView *docdetails.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// processing is true while a processing run started from the menu is active.
	processing bool

	// lastReport is the outcome of the most recent processing run.
	lastReport *domain.ProcessingReport

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingSearchService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		help:           help.New(),
		menuView:       menu.NewView(s, km),
		searchView:     search.NewView(s, km, ports.Search),
		documentsView:  documents.NewView(s, km, ports.Documents),
		docContentView: doccontent.NewView(s, ports.Documents),
		docDetailsView: docdetails.NewView(s, ports.Documents, ports.Search),
		currentView:    messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.docContentView.WithContext(ctx)
	a.docDetailsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("juris - Legal Document Search"),
		a.loadStats(),
	)
}

// loadStats fetches corpus progress for the menu status line.
func (a *App) loadStats() tea.Cmd {
	svc, ctx := a.ports.Documents, a.ctx
	return func() tea.Msg {
		stats, err := svc.Stats(ctx)
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// startProcessing runs the same job the scheduler runs, so a run already in
// progress is refused rather than duplicated.
func (a *App) startProcessing() tea.Cmd {
	if a.ports.Scheduler == nil {
		a.err = ErrProcessingUnavailable
		a.menuView.SetStatus("Processing unavailable: no scheduler configured")
		return nil
	}
	if a.processing {
		return nil
	}

	a.processing = true
	a.menuView.SetStatus("Processing corpus...")
	sched, ctx := a.ports.Scheduler, a.ctx
	return func() tea.Msg {
		report, err := sched.TriggerDocumentProcessing(ctx)
		return messages.ProcessingCompleted{Report: report, Err: err}
	}
}

func (a *App) handleProcessingCompleted(msg messages.ProcessingCompleted) tea.Cmd {
	a.processing = false
	switch {
	case errors.Is(msg.Err, domain.ErrProcessingInProgress):
		a.menuView.SetStatus("A processing run is already in progress")
		return nil
	case msg.Err != nil:
		a.err = msg.Err
		a.menuView.SetStatus("Processing failed: " + msg.Err.Error())
		return nil
	}

	report := msg.Report
	a.lastReport = &report
	a.menuView.SetStatus(fmt.Sprintf("Processed %d, errors %d, skipped %d",
		report.Processed, report.Errors, report.Skipped))

	var cmds []tea.Cmd
	if a.currentView == messages.ViewDocuments {
		cmds = append(cmds, a.documentsView.Load())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.docContentView.SetDimensions(msg.Width, msg.Height)
		a.docDetailsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if key.Matches(msg, a.keymap.Back) {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		fromMenu := a.currentView == messages.ViewMenu
		a.currentView = msg.View
		// Returning from a document keeps the list or results as they were.
		switch msg.View {
		case messages.ViewMenu:
			return a, a.loadStats()
		case messages.ViewSearch:
			if !fromMenu {
				return a, nil
			}
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewDocuments:
			if !fromMenu {
				return a, nil
			}
			return a, a.documentsView.Load()
		case messages.ViewHelp, messages.ViewDocContent, messages.ViewDocDetails:
			// Content views are loaded through DocumentSelected and DetailsRequested.
		}
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.CompletionsLoaded:
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentReprocessed:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.SetDocument(msg.Document, msg.Back)

	case messages.DetailsRequested:
		a.currentView = messages.ViewDocDetails
		return a, a.docDetailsView.SetDocument(msg.Document, msg.Back)

	case messages.DocumentLoaded:
		// Both content and details load documents; only the active one listens.
		switch a.currentView {
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewDocDetails:
			a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		default:
		}
		return a, cmd

	case messages.SimilarLoaded:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		if msg.Err == nil && msg.Stats != nil && !a.processing && a.lastReport == nil {
			a.menuView.SetStatus(fmt.Sprintf("%d of %d documents processed",
				msg.Stats.Processed, msg.Stats.Total))
		}
		return a, nil

	case messages.ProcessRequested:
		return a, a.startProcessing()

	case messages.ProcessingCompleted:
		return a, a.handleProcessingCompleted(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewMenu {
			return a, nil
		}
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewDocDetails:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewDocDetails:
		return a.docDetailsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

const scoringNote = "Scores are TF-IDF cosine similarity weighted title 30%, summary 40%, content 30%."

// viewHelp lists every key binding followed by how scores are computed.
func (a *App) viewHelp() string {
	a.help.Width = a.width
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Muted.Render(scoringNote) + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Processing reports whether a processing run started from the TUI is active.
func (a *App) Processing() bool {
	return a.processing
}

// LastReport returns the outcome of the most recent processing run, if any.
func (a *App) LastReport() *domain.ProcessingReport {
	return a.lastReport
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
