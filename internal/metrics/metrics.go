package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReturnsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_returns_created_total",
		Help: "Total number of return requests created, by starting status.",
	},
		[]string{"status"},
	)

	ReturnTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_return_transitions_total",
		Help: "Total number of applied return lifecycle transitions.",
	},
		[]string{"from", "to"},
	)

	RefundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_refunds_total",
		Help: "Total number of refund attempts, by outcome.",
	},
		[]string{"outcome"},
	)

	QualityChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_quality_checks_total",
		Help: "Total number of completed quality checks, by disposition.",
	},
		[]string{"disposition"},
	)

	ReturnsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_returns_expired_total",
		Help: "Total number of pending returns cancelled by the expiry sweep.",
	})

	OutboxEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_outbox_events_total",
		Help: "Total number of outbox events handled by the publisher, by result.",
	},
		[]string{"result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
