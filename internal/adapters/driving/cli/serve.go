package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/logger"
)

var (
	serveAddr        string
	serveNoScheduler bool
	serveAllOrigins  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background scheduler",
	Long: `Serves search, the document catalogue and the processing trigger over HTTP.

Routes:
  POST /admin/process-documents   process new documents now
  GET  /admin/scheduler           scheduled task status
  GET  /search?query=             ranked search
  GET  /search/suggestions?q=     query completions
  GET  /documents                 paginated document list
  GET  /documents/stats           processing progress
  GET  /documents/{id}            document with content
  GET  /documents/{id}/similar    related documents
  GET  /healthz, /metrics

The scheduler runs until the server stops unless --no-scheduler is given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveNoScheduler, "no-scheduler", false, "do not run background tasks")
	serveCmd.Flags().BoolVar(&serveAllOrigins, "cors-allow-all", false, "accept requests from any origin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil || documentService == nil {
		return errNotConfigured("search")
	}
	ctx := commandContext(cmd)

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *s
	}
	addr := settings.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	if schedulerService != nil && !serveNoScheduler {
		if err := schedulerService.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			if err := schedulerService.Stop(); err != nil {
				logger.Warn("scheduler stop error: %v", err)
			}
		}()
	}

	server := httpapi.New(httpapi.Config{
		Addr:             addr,
		AllowAllOrigins:  serveAllOrigins,
		SimilarThreshold: settings.SimilarThreshold,
	}, httpapi.Services{
		Search:    searchService,
		Documents: documentService,
		Scheduler: schedulerService,
		Metrics:   metricsHandler,
		Health:    healthCheck,
	})

	cmd.Printf("juris listening on %s\n", addr)
	return server.ListenAndServe(ctx)
}
