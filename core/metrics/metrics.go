package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tnb_api",
			Name:      "bookings_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	paymentsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tnb_api",
			Name:      "payments_confirmed_total",
			Help:      "Count of bookings marked paid via webhook.",
		},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tnb_api",
			Name:      "webhook_events_total",
			Help:      "Count of inbound Stripe webhook events by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	slotRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tnb_api",
			Name:      "slots_requested_total",
			Help:      "Count of availability lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, paymentsConfirmed, webhookEvents, slotRequests)
	})
}

func IncBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

func IncPaymentConfirmed() {
	paymentsConfirmed.Inc()
}

func IncWebhookEvent(eventType, outcome string) {
	webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func IncSlotRequest(outcome string) {
	slotRequests.WithLabelValues(outcome).Inc()
}
