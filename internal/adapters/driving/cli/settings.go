package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus folder, thresholds, score weights and
scheduler intervals.

Settings are stored in config.toml. JURIS_* environment variables override
them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting. Durations use Go syntax (24h, 168h, 90s).

Run 'juris settings keys' for the list of keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

// wizardInput is where the wizard reads answers from. Replaced in tests.
var wizardInput io.Reader = os.Stdin

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingRow is a key and its display value.
type settingRow struct {
	key   string
	value string
}

// settingSection groups rows for display.
type settingSection struct {
	name string
	rows []settingRow
}

func settingSections(s *domain.AppSettings) []settingSection {
	dataDir := s.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	maxSize := "unlimited"
	if s.MaxFileSize > 0 {
		maxSize = strconv.FormatInt(s.MaxFileSize, 10)
	}
	return []settingSection{
		{"Corpus", []settingRow{
			{"corpus_dir", s.CorpusDir},
			{"data_dir", dataDir},
			{"max_file_size", maxSize},
			{"extraction_timeout", s.ExtractionTimeout.String()},
			{"antiword_path", s.AntiwordPath},
		}},
		{"Search", []settingRow{
			{"search_threshold", formatFloat(s.SearchThreshold)},
			{"similar_threshold", formatFloat(s.SimilarThreshold)},
			{"weights.title", formatFloat(s.Weights.Title)},
			{"weights.summary", formatFloat(s.Weights.Summary)},
			{"weights.content", formatFloat(s.Weights.Content)},
			{"summary_sentences", strconv.Itoa(s.SummarySentences)},
			{"max_keywords", strconv.Itoa(s.MaxKeywords)},
		}},
		{"Scheduler", []settingRow{
			{"scheduler.enabled", strconv.FormatBool(s.SchedulerEnabled)},
			{"processing_interval", s.ProcessingInterval.String()},
			{"cleanup_interval", s.CleanupInterval.String()},
			{"device_retention", s.DeviceRetention.String()},
		}},
		{"Server", []settingRow{
			{"http_addr", s.HTTPAddr},
		}},
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printHeading(cmd, "Current Settings")
	cmd.Println()

	for _, section := range settingSections(settings) {
		cmd.Printf("[%s]\n", section.name)
		for _, row := range section.rows {
			cmd.Printf("  %-20s %s\n", row.key, row.value)
		}
		cmd.Println()
	}

	for _, key := range settingsService.Unknown() {
		cmd.Printf("Warning: unknown setting %q is ignored\n", key)
	}
	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'juris settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if f, ok := wizardInput.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return errors.New("the wizard needs an interactive terminal; use 'juris settings set'")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printHeading(cmd, "Juris Settings Wizard")
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	reader := bufio.NewReader(wizardInput)
	changed := 0
	for step, section := range settingSections(settings) {
		title := fmt.Sprintf("Step %d: %s", step+1, section.name)
		cmd.Println(title)
		cmd.Println(strings.Repeat("-", len(title)))

		for _, row := range section.rows {
			for {
				cmd.Printf("  %s [%s]: ", row.key, row.value)
				input, eof := readLine(reader)
				if input == "" {
					if eof {
						cmd.Println()
						return finishWizard(cmd, changed)
					}
					break
				}
				if err := settingsService.Set(row.key, input); err != nil {
					cmd.Printf("  %s\n", render(cmd, errorStyle, err.Error()))
					if eof {
						return finishWizard(cmd, changed)
					}
					continue
				}
				changed++
				break
			}
		}
		cmd.Println()
	}

	return finishWizard(cmd, changed)
}

func finishWizard(cmd *cobra.Command, changed int) error {
	cmd.Printf("Saved %d change(s).\n", changed)
	return nil
}

// readLine returns the next trimmed line and whether input is exhausted.
func readLine(reader *bufio.Reader) (string, bool) {
	input, err := reader.ReadString('\n')
	return strings.TrimSpace(input), err != nil
}
