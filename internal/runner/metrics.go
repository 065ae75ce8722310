package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики менеджера runner'ов.
var (
	runnersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scenarium_runners_active",
		Help: "Number of currently registered runners",
	})

	runsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scenarium_runs_started_total",
		Help: "Total pipeline runs started",
	})

	runsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scenarium_runs_finished_total",
		Help: "Total pipeline runs finished, by status",
	}, []string{"status"})
)
