package driven

import (
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// Metrics records operational measurements.
type Metrics interface {
	// ObserveProcessingRun records the outcome of a corpus processing run.
	ObserveProcessingRun(report domain.ProcessingReport)

	// ObserveSearch records the duration of a search.
	ObserveSearch(d time.Duration)

	// AddDevicesDeactivated records devices deactivated by cleanup.
	AddDevicesDeactivated(n int)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

// ObserveProcessingRun implements Metrics.
func (NopMetrics) ObserveProcessingRun(domain.ProcessingReport) {}

// ObserveSearch implements Metrics.
func (NopMetrics) ObserveSearch(time.Duration) {}

// AddDevicesDeactivated implements Metrics.
func (NopMetrics) AddDevicesDeactivated(int) {}
