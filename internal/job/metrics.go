package job

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "routined",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Total synchronous routine invocations",
		},
		[]string{"outcome"},
	)

	jobsSpawnedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "routined",
			Subsystem: "jobs",
			Name:      "spawned_total",
			Help:      "Total background jobs spawned",
		},
	)

	jobsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "routined",
			Subsystem: "jobs",
			Name:      "completed_total",
			Help:      "Background jobs finished, by outcome",
		},
		[]string{"outcome"},
	)

	jobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "routined",
			Subsystem: "jobs",
			Name:      "active",
			Help:      "Background jobs currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, jobsSpawnedTotal, jobsCompletedTotal, jobsActive)
}
