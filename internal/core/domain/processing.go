package domain

import "time"

// ProcessOptions configures a corpus processing run.
type ProcessOptions struct {
	// Force reprocesses documents already marked processed.
	// The scheduler never sets it.
	Force bool
}

// FileFailure records why a single file could not be processed.
type FileFailure struct {
	Filename string
	Error    string
}

// ProcessingReport is the outcome of a corpus processing run.
type ProcessingReport struct {
	// Processed counts files whose content was derived and persisted.
	Processed int

	// Errors counts files that failed extraction or persistence.
	Errors int

	// Skipped counts files already processed.
	Skipped int

	// Failures lists per-file errors in processing order.
	Failures []FileFailure

	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the run took.
func (r ProcessingReport) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
