package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a snapshot run.
//
// The job is a short-lived batch process, so metrics live in their own
// registry and are exported to a textfile at the end of the run rather
// than scraped from an HTTP endpoint.
type Metrics struct {
	registry *prometheus.Registry

	ProductFetches    *prometheus.CounterVec // labels: product={hwo,alerts,observation,radar}, outcome={success,error}
	EntriesSeen       prometheus.Counter
	AlertsStored      *prometheus.CounterVec // labels: tier={warn,watch,alert}
	DuplicatesSkipped prometheus.Counter
	TierFallbacks     prometheus.Counter

	RunDuration prometheus.Histogram
}

// NewMetrics creates all snapshot metrics registered against a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ProductFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_snapshot",
			Name:      "product_fetches_total",
			Help:      "Upstream product requests by product and outcome.",
		}, []string{"product", "outcome"}),
		EntriesSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_snapshot",
			Name:      "feed_entries_total",
			Help:      "Total alert feed entries read across all counties.",
		}),
		AlertsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_snapshot",
			Name:      "alerts_stored_total",
			Help:      "Alert records kept in the snapshot by tier.",
		}, []string{"tier"}),
		DuplicatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_snapshot",
			Name:      "duplicates_skipped_total",
			Help:      "Feed entries dropped because an identical alert was already kept.",
		}),
		TierFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_snapshot",
			Name:      "tier_fallbacks_total",
			Help:      "Alerts whose event type matched no configured tier list.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_snapshot",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete snapshot run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
	}

	m.registry.MustRegister(
		m.ProductFetches,
		m.EntriesSeen,
		m.AlertsStored,
		m.DuplicatesSkipped,
		m.TierFallbacks,
		m.RunDuration,
	)

	return m
}

// WriteTextfile exports the current metric values to path in the
// Prometheus text exposition format, for pickup by a node_exporter
// textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
