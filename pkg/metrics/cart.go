package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// CartMetrics records cart intent dispatches and the size of the last snapshot.
type CartMetrics struct {
	dispatched *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	entries    prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_intents_total",
		Help: "Cart intents dispatched to the store, by kind and outcome.",
	}, []string{"kind", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_intent_duration_seconds",
		Help:    "Time spent applying cart intents.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	entries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_entries",
		Help: "Number of entries in the most recent cart snapshot.",
	})
	reg.MustRegister(dispatched, duration, entries)
	return &CartMetrics{
		dispatched: dispatched,
		duration:   duration,
		entries:    entries,
	}
}

// ObserveDispatch counts one dispatch and records how long it took.
func (c *CartMetrics) ObserveDispatch(kind, outcome string, took time.Duration) {
	if c == nil || c.dispatched == nil {
		return
	}
	kind = normalizeLabel(kind)
	c.dispatched.WithLabelValues(kind, normalizeLabel(outcome)).Inc()
	c.duration.WithLabelValues(kind).Observe(took.Seconds())
}

// SetEntries records the entry count of the latest snapshot.
func (c *CartMetrics) SetEntries(count int) {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Set(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
