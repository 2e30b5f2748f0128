package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"method", "endpoint", "status"},
	)

	bookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendshare",
			Name:      "booking_decisions_total",
			Help:      "Booking lifecycle transitions by resulting status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingDecisions)
	})
}

// IncHTTP increments the request counter for an endpoint label.
func IncHTTP(method, endpoint, status string) {
	httpRequests.WithLabelValues(method, endpoint, status).Inc()
}

// IncBookingDecision counts a booking reaching a terminal status.
func IncBookingDecision(status string) {
	bookingDecisions.WithLabelValues(status).Inc()
}
