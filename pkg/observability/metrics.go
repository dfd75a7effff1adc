package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "komoju_client_requests_total",
			Help: "Total number of KOMOJU API requests",
		},
		[]string{"resource", "method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "komoju_client_request_duration_seconds",
			Help:    "Duration of KOMOJU API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "komoju_client_requests_in_flight",
			Help: "Number of KOMOJU API requests currently being processed",
		},
	)
)

// RecordRequest records the outcome of one outbound API call.
// status is a coarse classification ("ok", "error", "transport_error").
func RecordRequest(resource, method, status string, elapsed time.Duration) {
	apiRequestDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
	apiRequestsTotal.WithLabelValues(resource, method, status).Inc()
}

// TrackInFlight marks a request as started and returns a done func.
func TrackInFlight() func() {
	apiRequestsInFlight.Inc()
	return apiRequestsInFlight.Dec
}
