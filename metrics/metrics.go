package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesProcessed The total number of processed messages (counter)
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingFailed total number of message processing failures (counter)
	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration The total time spent processing messages (summary with quantiles 0.5, 0.9, and 0.99)
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "messages",
			Name:       "processing_duration_seconds",
			Help:       "The total time spent processing messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)

	PricesCalculated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "museum",
			Name:      "prices_calculated_total",
			Help:      "The total number of ticket prices calculated over HTTP",
		},
	)

	// ValidationFailures counts rejected ticket requests by what was not found.
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museum",
			Name:      "validation_failures_total",
			Help:      "The total number of ticket requests rejected by the catalog",
		},
		[]string{"kind"},
	)

	ReceiptsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "museum",
			Name:      "receipts_issued_total",
			Help:      "The total number of receipts issued",
		},
	)

	TicketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museum",
			Name:      "tickets_sold_total",
			Help:      "The total number of tickets sold",
		},
		[]string{"ticket_type", "entrant_type"},
	)

	RevenueCents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "museum",
			Name:      "revenue_cents_total",
			Help:      "Revenue from sold tickets including extras, in cents",
		},
		[]string{"ticket_type", "entrant_type"},
	)
)
