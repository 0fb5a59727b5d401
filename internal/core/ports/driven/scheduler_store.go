package driven

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// SchedulerStore keeps task state and run history so schedules survive a
// restart.
type SchedulerStore interface {
	// GetTask returns nil and no error when the task is unknown.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	// ListTasks returns every task ordered by ID.
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask inserts or replaces the task with the same ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// RecordResult appends a run to its task's history and trims that
	// history to the newest keep entries. keep <= 0 disables trimming.
	RecordResult(ctx context.Context, result *domain.TaskResult, keep int) error

	// History returns up to limit runs of a task, newest first.
	History(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)
}
