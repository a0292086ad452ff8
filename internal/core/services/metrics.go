package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "inventory"

// Metrics holds the counters exported by background jobs
type Metrics struct {
	RemindersSent      *prometheus.CounterVec
	RemindersFailed    *prometheus.CounterVec
	LoansMarkedOverdue prometheus.Counter
	LoansPurged        prometheus.Counter
	JobRuns            *prometheus.CounterVec
}

// NewMetrics registers job counters on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminders_sent_total",
			Help:      "Borrower reminders sent, by kind.",
		}, []string{"kind"}),
		RemindersFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminders_failed_total",
			Help:      "Borrower reminders that failed to send, by kind.",
		}, []string{"kind"}),
		LoansMarkedOverdue: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "loans_marked_overdue_total",
			Help:      "Loans moved from borrowed to overdue.",
		}),
		LoansPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "loans_purged_total",
			Help:      "Returned loans archived by the retention job.",
		}),
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job executions, by job and outcome.",
		}, []string{"job", "outcome"}),
	}
}
