// Package metrics holds the Prometheus collectors of the checkout service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conference_checkout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conference_checkout_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	checkoutOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conference_checkout_operations_total",
			Help: "Total number of checkout operations",
		},
		[]string{"operation", "status"},
	)

	validationNotices = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conference_checkout_validation_notices_total",
			Help: "Validation notices returned to shoppers",
		},
	)

	ticketsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conference_checkout_tickets_registered_total",
			Help: "Ticket registrations written onto placed orders",
		},
	)

	surchargeLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conference_checkout_surcharge_lines_total",
			Help: "Per-ticket surcharge lines added during totals calculation",
		},
	)
)

// RecordOperation counts a checkout operation outcome
func RecordOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	checkoutOperations.WithLabelValues(operation, status).Inc()
}

// RecordValidationNotices counts notices from one validation pass
func RecordValidationNotices(n int) {
	validationNotices.Add(float64(n))
}

// RecordTicketsRegistered counts tickets on a placed order
func RecordTicketsRegistered(n int) {
	ticketsRegistered.Add(float64(n))
}

// RecordSurchargeLines counts surcharge lines on a recalculated cart
func RecordSurchargeLines(n int) {
	surchargeLines.Add(float64(n))
}
