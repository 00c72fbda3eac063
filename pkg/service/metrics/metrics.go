// Package metrics provides Prometheus instrumentation for the scoring
// engine: how many snapshots and anomaly events a deployment produces,
// how long scoring takes, and how many scopes fail per batch run.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stresssense"

// Metrics holds the engine's Prometheus collectors on a private
// registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	snapshotsComputed prometheus.Counter
	anomalyEvents     *prometheus.CounterVec
	scopeFailures     prometheus.Counter
	scoringDuration   prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		snapshotsComputed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_computed_total",
			Help:      "Total number of risk snapshots computed",
		}),
		anomalyEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomaly_events_total",
			Help:      "Total number of anomaly events emitted",
		}, []string{"metric", "severity"}),
		scopeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scope_failures_total",
			Help:      "Total number of scope computations that failed and were skipped",
		}),
		scoringDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Duration of a single scope scoring computation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SnapshotComputed(duration time.Duration) {
	m.snapshotsComputed.Inc()
	m.scoringDuration.Observe(duration.Seconds())
}

func (m *Metrics) AnomalyEmitted(metric, severity string) {
	m.anomalyEvents.WithLabelValues(metric, severity).Inc()
}

func (m *Metrics) ScopeFailed() {
	m.scopeFailures.Inc()
}
