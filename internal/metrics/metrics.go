package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DepositsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_deposits_total",
			Help: "Successful deposits",
		},
	)
	WithdrawalsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_withdrawals_total",
			Help: "Successful withdrawals",
		},
	)
	WithdrawalsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_withdrawals_rejected_total",
			Help: "Withdrawals rejected before any mutation",
		},
		[]string{"reason"}, // insufficient_funds|no_balance_record|invalid_amount
	)
	ReconciliationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_reconciliations_total",
			Help: "TotalBalance recomputations",
		},
	)
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(DepositsTotal)
	prometheus.MustRegister(WithdrawalsTotal)
	prometheus.MustRegister(WithdrawalsRejected)
	prometheus.MustRegister(ReconciliationsTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
