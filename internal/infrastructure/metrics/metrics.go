package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics incremented by the use cases. HTTP-level metrics live in
// the metrics middleware.
var (
	MembersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_members_created_total",
		Help: "Total number of members registered",
	})

	MembersDeactivated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_members_deactivated_total",
		Help: "Total number of members deactivated",
	})

	LoansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_loans_created_total",
		Help: "Total number of loan requests created",
	})

	LoansApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_loans_approved_total",
		Help: "Total number of loans approved",
	})

	LoansRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_loans_rejected_total",
		Help: "Total number of loans rejected",
	})

	LoansTerminated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_loans_terminated_total",
		Help: "Total number of loans fully repaid",
	})

	SchedulesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_schedules_generated_total",
		Help: "Total number of amortization schedules generated",
	})

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_payments_recorded_total",
		Help: "Total number of installment payments recorded",
	})

	DistributionsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cajafund_distributions_total",
		Help: "Total number of interest distributions executed",
	})

	DistributionAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cajafund_distribution_amount",
		Help:    "Distributed interest per loan payoff",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	})

	EntriesAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cajafund_ledger_entries_total",
			Help: "Total ledger entries appended by stream kind",
		},
		[]string{"stream"},
	)
)
