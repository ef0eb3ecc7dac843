package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "messenger_connections_active",
			Help: "Live socket connections currently registered",
		},
	)

	MessagesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_messages_routed_total",
			Help: "Live message routing attempts by outcome",
		},
		[]string{"status"}, // "delivered" or "receiverOffline"
	)

	TypingEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messenger_typing_events_total",
			Help: "Typing indicator events forwarded",
		},
	)

	ReadReceipts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messenger_read_receipts_total",
			Help: "Read receipts processed",
		},
	)

	BusEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messenger_bus_events_published_total",
			Help: "Domain events published to the message bus",
		},
		[]string{"action"},
	)
)
