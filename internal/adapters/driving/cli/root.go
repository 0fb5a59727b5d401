// Package cli implements the juris command line on top of the driving ports.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options are the global flags handed to the bootstrap function.
type Options struct {
	// ConfigDir holds config.toml and the default data directory.
	ConfigDir string

	// Memory selects in-memory stores instead of SQLite.
	Memory bool

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the core services the commands call.
// Any field may be nil; commands that need a missing service fail.
type Services struct {
	Corpus    driving.CorpusProcessor
	Search    driving.SearchService
	Documents driving.DocumentService
	Scheduler driving.Scheduler
	Settings  driving.SettingsService

	// Metrics serves Prometheus metrics for the HTTP server.
	Metrics http.Handler

	// Health checks storage for the HTTP server.
	Health func(ctx context.Context) error
}

// Bootstrap builds the services for the given options. The returned
// cleanup function releases them and is called after the command.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

// annotationNoServices marks commands that run without services.
const annotationNoServices = "juris/no-services"

var (
	corpusProcessor  driving.CorpusProcessor
	searchService    driving.SearchService
	documentService  driving.DocumentService
	schedulerService driving.Scheduler
	settingsService  driving.SettingsService
	metricsHandler   http.Handler
	healthCheck      func(ctx context.Context) error

	bootstrap  Bootstrap
	configured bool
	cleanup    func() error

	globalOpts Options
)

var rootCmd = &cobra.Command{
	Use:   "juris",
	Short: "Search a folder of legal documents",
	Long: `juris extracts text from the PDF, DOC, DOCX and TXT files in a corpus
folder, derives a summary and keywords for each, and ranks them against free
text queries with weighted TF-IDF cosine similarity.

Documents are processed once. A background scheduler picks up new files every
24 hours while the HTTP server is running.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigDir, "config", "", "config directory (default ~/.juris)")
	flags.BoolVar(&globalOpts.Memory, "memory", false, "keep documents in memory instead of SQLite")
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs already built services. Bootstrap is skipped afterwards.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	corpusProcessor = s.Corpus
	searchService = s.Search
	documentService = s.Documents
	schedulerService = s.Scheduler
	settingsService = s.Settings
	metricsHandler = s.Metrics
	healthCheck = s.Health
	configured = true
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)

	if configured || bootstrap == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	svc, release, err := bootstrap(cmd.Context(), globalOpts)
	if err != nil {
		return err
	}
	SetServices(svc)
	cleanup = release
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if cleanup == nil {
		return nil
	}
	release := cleanup
	cleanup = nil
	configured = false
	return release()
}

// commandContext returns the command context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
