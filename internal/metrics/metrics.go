package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendly",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendly",
			Name:      "bookings_total",
			Help:      "Booking lifecycle transitions by outcome.",
		},
		[]string{"outcome"},
	)

	exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendly",
			Name:      "report_exports_total",
			Help:      "Bookings report export runs by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookings, exports)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBooking counts a booking outcome: created, approved, rejected.
func IncBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

// IncExport counts an export run result: ok, failed.
func IncExport(result string) {
	exports.WithLabelValues(result).Inc()
}
