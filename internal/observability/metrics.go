package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flood_alert"

// Metrics holds the Prometheus collectors for the report lifecycle and the store.
type Metrics struct {
	ReportsCreated  prometheus.Counter
	ReportsRejected prometheus.Counter
	ReportsResolved prometheus.Counter
	Votes           *prometheus.CounterVec // labels: type={up,down}

	StoreErrors   *prometheus.CounterVec   // labels: operation
	StoreDuration *prometheus.HistogramVec // labels: operation

	ActiveCache *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_created_total",
			Help:      "Total flood reports persisted.",
		}),
		ReportsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rejected_total",
			Help:      "Reports moved to rejected by the downvote rule.",
		}),
		ReportsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_resolved_total",
			Help:      "Resolve operations that reached the store.",
		}),
		Votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Persisted votes by direction.",
		}, []string{"type"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Report store failures by operation.",
		}, []string{"operation"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_duration_seconds",
			Help:      "Report store call duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
		ActiveCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "active_cache_total",
			Help:      "Active report list cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ReportsCreated,
		m.ReportsRejected,
		m.ReportsResolved,
		m.Votes,
		m.StoreErrors,
		m.StoreDuration,
		m.ActiveCache,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}
