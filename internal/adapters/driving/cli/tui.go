package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driving/tui"
	"github.com/custodia-labs/juris/internal/logger"
)

var tuiNoScheduler bool

// runTUIApp starts the bubbletea program. Replaced in tests.
var runTUIApp = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for juris.

The TUI searches processed documents, browses the corpus, shows extracted
text with related documents, and starts processing runs.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  d        - Document details
  ] / [    - Next / previous page
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiNoScheduler, "no-scheduler", false, "do not run background tasks while the TUI is open")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports := tui.NewPorts(searchService, documentService, schedulerService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	ctx := commandContext(cmd)
	app.WithContext(ctx)

	// TUI is long-running, so background tasks run alongside it.
	if schedulerService != nil && !tuiNoScheduler {
		if err := schedulerService.Start(ctx); err != nil {
			logger.Warn("scheduler not started: %v", err)
		} else {
			defer func() {
				if err := schedulerService.Stop(); err != nil {
					logger.Warn("scheduler stop error: %v", err)
				}
			}()
		}
	}

	if err := runTUIApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
