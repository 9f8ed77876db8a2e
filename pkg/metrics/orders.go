package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the place-order flow, commit plus notification
	OrderPlacementLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_placement_latency_seconds",
		Help:    "Latency of the order placement flow",
		Buckets: prometheus.DefBuckets,
	})

	// Orders committed successfully
	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	// Orders rejected before any write, by reason
	OrdersRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected order attempts",
	}, []string{"reason"})

	// Emails that failed after the order committed
	OrderNotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notification_failures_total",
		Help: "Total number of failed order notification emails",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderPlacementLatency,
		OrdersPlacedTotal,
		OrdersRejectedTotal,
		OrderNotificationFailures,
	)
}
