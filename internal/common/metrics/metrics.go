package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_reconcile_runs_total",
			Help: "Total number of reconciliation passes by job",
		},
		[]string{"job", "result"},
	)

	ReconcileItemFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_reconcile_item_failures_total",
			Help: "Items whose reconciliation failed and were left for the next tick",
		},
		[]string{"job", "reason"},
	)

	ReconcileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sportbot_reconcile_duration_seconds",
			Help: "Duration of one reconciliation pass in seconds",
		},
		[]string{"job"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_notifications_total",
			Help: "Outbound chat notifications by kind and delivery result",
		},
		[]string{"kind", "result"},
	)

	AutoCheckinOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_autocheckin_outcomes_total",
			Help: "Per-key auto check-in stop conditions",
		},
		[]string{"outcome"},
	)

	SessionProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_session_probes_total",
			Help: "Session validity probes by result",
		},
		[]string{"result"},
	)

	JobTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportbot_scheduler_ticks_total",
			Help: "Scheduler ticks by job and result",
		},
		[]string{"job", "result"},
	)
)
