package driving

import (
	"context"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// Scheduler manages background tasks: corpus processing and device cleanup.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Starting an already running scheduler is a no-op.
	Start(ctx context.Context) error

	// Stop halts the timers and waits for in-flight tasks.
	Stop() error

	// TriggerDocumentProcessing runs the processing task immediately.
	// Returns domain.ErrProcessingInProgress if a run is already active.
	TriggerDocumentProcessing(ctx context.Context) (domain.ProcessingReport, error)

	// Tasks returns the persisted state of every scheduled task.
	Tasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// History returns recent results for a task, most recent first.
	History(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// IsRunning reports whether the scheduler has been started.
	IsRunning() bool
}
