package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "kafka_consumer",
			Name:      "orders_processed_total",
			Help:      "Total number of successfully stored orders",
		},
	)

	ordersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "kafka_consumer",
			Name:      "orders_failed_total",
			Help:      "Total number of failed order processing attempts",
		},
	)

	ordersDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "kafka_consumer",
			Name:      "orders_dlq_total",
			Help:      "Total number of orders written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	orderProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shared_payment",
			Subsystem: "kafka_consumer",
			Name:      "order_processing_duration_seconds",
			Help:      "Histogram of order processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var (
	sharesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "shares",
			Name:      "created_total",
			Help:      "Total number of share links handed out",
		},
	)

	paymentSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "payments",
			Name:      "submissions_total",
			Help:      "Payment submissions by outcome",
		},
		[]string{"outcome"},
	)

	webhookOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shared_payment",
			Subsystem: "webhooks",
			Name:      "received_total",
			Help:      "Gateway notifications by gateway and outcome",
		},
		[]string{"gateway", "outcome"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersProcessed,
		ordersFailed,
		ordersDLQ,
		commitErrors,
		orderProcessingDuration,

		sharesCreated,
		paymentSubmissions,
		webhookOutcomes,
	)
}
