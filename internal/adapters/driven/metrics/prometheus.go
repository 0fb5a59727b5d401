// Package metrics provides Prometheus collectors for corpus processing,
// search and device cleanup.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

const namespace = "juris"

// Ensure Prometheus implements the interface.
var _ driven.Metrics = (*Prometheus)(nil)

// Prometheus records metrics on its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	processed      prometheus.Counter
	errors         prometheus.Counter
	skipped        prometheus.Counter
	runDuration    prometheus.Histogram
	searchDuration prometheus.Histogram
	deactivated    prometheus.Counter
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents whose content was derived and stored.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_errors_total",
			Help:      "Documents that failed extraction or persistence.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_skipped_total",
			Help:      "Documents skipped because they were already processed.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processing_run_duration_seconds",
			Help:      "Duration of corpus processing runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search queries.",
			Buckets:   prometheus.DefBuckets,
		}),
		deactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "devices_deactivated_total",
			Help:      "Devices deactivated by the cleanup job.",
		}),
	}
	p.registry.MustRegister(
		p.processed,
		p.errors,
		p.skipped,
		p.runDuration,
		p.searchDuration,
		p.deactivated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// ObserveProcessingRun implements driven.Metrics.
func (p *Prometheus) ObserveProcessingRun(report domain.ProcessingReport) {
	p.processed.Add(float64(report.Processed))
	p.errors.Add(float64(report.Errors))
	p.skipped.Add(float64(report.Skipped))
	p.runDuration.Observe(report.Duration().Seconds())
}

// ObserveSearch implements driven.Metrics.
func (p *Prometheus) ObserveSearch(d time.Duration) {
	p.searchDuration.Observe(d.Seconds())
}

// AddDevicesDeactivated implements driven.Metrics.
func (p *Prometheus) AddDevicesDeactivated(n int) {
	if n > 0 {
		p.deactivated.Add(float64(n))
	}
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
