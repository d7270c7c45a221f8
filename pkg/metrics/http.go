package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request latency per route.
type HTTPMetrics struct {
	requests *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request histogram on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(requests)
	return &HTTPMetrics{requests: requests}
}

// ObserveRequest records a finished request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, took time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(took.Seconds())
}
