package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var (
	processForce  bool
	processFolder string
	processJSON   bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process new documents in the corpus folder",
	Long: `Extracts text from every unprocessed file in the corpus folder and stores
its summary, keywords and word count. Files already processed are skipped
unless --force is given. A failing file is reported and does not stop the run.`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVarP(&processForce, "force", "f", false, "reprocess documents that are already processed")
	processCmd.Flags().StringVar(&processFolder, "folder", "", "corpus folder (default from settings)")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	var (
		report domain.ProcessingReport
		err    error
	)
	switch {
	case !processForce && processFolder == "" && schedulerService != nil:
		// Same path as the scheduled job, so a concurrent run is refused.
		report, err = schedulerService.TriggerDocumentProcessing(ctx)
	case corpusProcessor != nil:
		folder, ferr := corpusFolder()
		if ferr != nil {
			return ferr
		}
		report, err = corpusProcessor.ProcessAll(ctx, folder, domain.ProcessOptions{Force: processForce})
	default:
		return errNotConfigured("corpus")
	}
	if err != nil {
		if errors.Is(err, domain.ErrProcessingInProgress) {
			return errors.New("a processing run is already in progress")
		}
		return fmt.Errorf("processing failed: %w", err)
	}

	if processJSON {
		return printJSON(cmd, report)
	}

	cmd.Println("Document processing completed.")
	cmd.Printf("  Processed: %d\n", report.Processed)
	cmd.Printf("  Errors:    %d\n", report.Errors)
	cmd.Printf("  Skipped:   %d\n", report.Skipped)
	cmd.Printf("  Duration:  %s\n", report.Duration().Round(time.Millisecond))
	if len(report.Failures) > 0 {
		cmd.Println()
		cmd.Println("Failures:")
		for _, f := range report.Failures {
			cmd.Printf("  %s: %s\n", f.Filename, render(cmd, errorStyle, f.Error))
		}
	}
	return nil
}

// corpusFolder resolves the folder from the flag or the settings.
func corpusFolder() (string, error) {
	if processFolder != "" {
		return processFolder, nil
	}
	if settingsService == nil {
		return domain.DefaultCorpusDir, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.CorpusDir, nil
}
