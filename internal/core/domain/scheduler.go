package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is a count of items handled (e.g., documents processed).
	ItemsProcessed int

	// ItemsFailed is a count of items that could not be handled.
	ItemsFailed int

	// Trigger records whether the timer or a caller started the run.
	Trigger Trigger
}

// Trigger identifies what started a task run.
type Trigger string

// Triggers.
const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// CorpusDir is the folder the document processing task reads.
	CorpusDir string

	// DeviceRetention is how long a device may stay unseen before cleanup deactivates it.
	DeviceRetention time.Duration

	// HistoryLimit is the number of results kept per task.
	HistoryLimit int

	// TaskConfigs holds per-task configuration.
	TaskConfigs map[string]TaskConfig
}

// TaskConfig holds configuration for a single task.
type TaskConfig struct {
	// Enabled indicates whether this task should run.
	Enabled bool

	// Interval defines how often the task should run.
	Interval time.Duration
}

// GetTaskConfig returns the configuration for a specific task.
// Returns a zero TaskConfig if the task is not configured.
func (c *SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	if c.TaskConfigs == nil {
		return TaskConfig{}
	}
	return c.TaskConfigs[taskID]
}

// Scheduler defaults.
const (
	DefaultProcessingInterval = 24 * time.Hour
	DefaultCleanupInterval    = 7 * 24 * time.Hour
	DefaultDeviceRetention    = 30 * 24 * time.Hour
	DefaultHistoryLimit       = 100
)

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:         true,
		DeviceRetention: DefaultDeviceRetention,
		HistoryLimit:    DefaultHistoryLimit,
		TaskConfigs: map[string]TaskConfig{
			TaskIDDocumentProcessing: {
				Enabled:  true,
				Interval: DefaultProcessingInterval,
			},
			TaskIDDeviceCleanup: {
				Enabled:  true,
				Interval: DefaultCleanupInterval,
			},
		},
	}
}

// Task IDs for built-in tasks.
const (
	TaskIDDocumentProcessing = "document-processing"
	TaskIDDeviceCleanup      = "device-cleanup"
)

// TaskName returns the display name of a built-in task.
func TaskName(taskID string) string {
	switch taskID {
	case TaskIDDocumentProcessing:
		return "Document Processing"
	case TaskIDDeviceCleanup:
		return "Device Cleanup"
	default:
		return taskID
	}
}
