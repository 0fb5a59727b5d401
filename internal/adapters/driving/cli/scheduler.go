package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var schedulerHistory int

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Inspect background tasks",
	Long: `The scheduler processes new documents every 24 hours and deactivates
devices unseen for 30 days once a week. It runs inside 'juris serve'.`,
}

var schedulerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show task schedule and recent runs",
	Args:  cobra.NoArgs,
	RunE:  runSchedulerStatus,
}

func init() {
	schedulerStatusCmd.Flags().IntVar(&schedulerHistory, "history", 5, "recent runs to show per task")
	schedulerCmd.AddCommand(schedulerStatusCmd)
	rootCmd.AddCommand(schedulerCmd)
}

func runSchedulerStatus(cmd *cobra.Command, _ []string) error {
	if schedulerService == nil {
		return errNotConfigured("scheduler")
	}
	ctx := commandContext(cmd)

	tasks, err := schedulerService.Tasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		cmd.Println("No scheduled tasks.")
		return nil
	}

	for i := range tasks {
		task := &tasks[i]
		printHeading(cmd, task.Name)
		cmd.Printf("  ID:           %s\n", task.ID)
		cmd.Printf("  Enabled:      %t\n", task.Enabled)
		cmd.Printf("  Interval:     %s\n", task.Interval)
		cmd.Printf("  Last run:     %s\n", formatTime(task.LastRun))
		cmd.Printf("  Last success: %s\n", formatTime(task.LastSuccess))
		cmd.Printf("  Next run:     %s\n", formatTime(task.NextRun))
		if task.LastError != "" {
			cmd.Printf("  Last error:   %s\n", render(cmd, errorStyle, task.LastError))
		}

		if schedulerHistory > 0 {
			history, err := schedulerService.History(ctx, task.ID, schedulerHistory)
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}
			printHistory(cmd, history)
		}
		cmd.Println()
	}
	return nil
}

func printHistory(cmd *cobra.Command, history []domain.TaskResult) {
	if len(history) == 0 {
		return
	}
	cmd.Println("  Recent runs:")
	for _, r := range history {
		outcome := "ok"
		if !r.Success {
			outcome = render(cmd, errorStyle, "failed: "+r.Error)
		}
		cmd.Printf("    %s  %-9s  %d done, %d failed  %s\n",
			r.StartedAt.Format(timeFormat), r.Trigger, r.ItemsProcessed, r.ItemsFailed, outcome)
	}
}
