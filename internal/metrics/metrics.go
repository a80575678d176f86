// Package metrics exposes the Prometheus counters served at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_booking",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and path.",
		},
		[]string{"method", "path"},
	)

	bookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_booking",
			Name:      "booking_attempts_total",
			Help:      "Booking creation attempts by outcome (created, conflict, invalid, error).",
		},
		[]string{"outcome"},
	)
)

// Register registers the Prometheus collectors. Safe to call multiple
// times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingOutcomes)
	})
}

// IncHTTP counts one request for a method/path pair.
func IncHTTP(method, path string) {
	httpRequests.WithLabelValues(method, path).Inc()
}

// IncBooking counts one booking attempt with its outcome.
func IncBooking(outcome string) {
	bookingOutcomes.WithLabelValues(outcome).Inc()
}
