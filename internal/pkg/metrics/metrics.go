// Package metrics exposes Prometheus instrumentation for the fulfillment
// service. Counters are package-level and registered once at startup.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	PaymentOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_payment_outcomes_total",
			Help: "Payment gate outcomes by result (success, failed, unavailable)",
		},
		[]string{"outcome"},
	)

	PaymentBreakerTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_payment_breaker_transitions_total",
			Help: "Circuit breaker state observations on payment calls",
		},
		[]string{"state"},
	)

	DeliveriesAssignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_deliveries_assigned_total",
			Help: "Total number of deliveries assigned to riders",
		},
	)

	NotificationsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_notifications_processed_total",
			Help: "Notification events processed by terminal status",
		},
		[]string{"status"},
	)

	NotificationsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fulfillment_notifications_dropped_total",
			Help: "Notification events dropped after exhausting the redelivery budget",
		},
	)

	NotificationProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fulfillment_notification_processing_duration_seconds",
			Help:    "Duration of notification event processing",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register registers all Prometheus metrics.
func Register() {
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(PaymentOutcomesTotal)
	prometheus.MustRegister(PaymentBreakerTransitionsTotal)
	prometheus.MustRegister(DeliveriesAssignedTotal)
	prometheus.MustRegister(NotificationsProcessedTotal)
	prometheus.MustRegister(NotificationsDroppedTotal)
	prometheus.MustRegister(NotificationProcessingDuration)
}
