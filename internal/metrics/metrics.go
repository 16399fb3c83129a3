package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CartItemsPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_cart_items_purged_total",
		Help: "Total soft-deleted cart items permanently removed by the sweeper",
	})
	OrdersPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_orders_placed_total",
		Help: "Total orders placed",
	}, []string{"kind"})
	OutboxSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_outbox_sent_total",
		Help: "Total outbox events successfully published",
	})
	OutboxPublishErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_outbox_publish_errors_total",
		Help: "Total outbox publish errors",
	})
	OutboxPending = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shop_outbox_pending",
		Help: "Number of pending outbox events",
	})
)

func init() {
	prometheus.MustRegister(
		CartItemsPurgedTotal,
		OrdersPlacedTotal,
		OutboxSentTotal,
		OutboxPublishErrorsTotal,
		OutboxPending,
	)
}
