package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	plansGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runcoach",
		Subsystem: "planner",
		Name:      "plans_generated_total",
		Help:      "Training plans generated, by plan kind and data source.",
	}, []string{"kind", "source"})
	planDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "runcoach",
		Subsystem: "planner",
		Name:      "generation_duration_seconds",
		Help:      "Time spent generating a plan, including data resolution.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"kind"})
	runsImported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runcoach",
		Subsystem: "importer",
		Name:      "runs_imported_total",
		Help:      "Runs imported from uploaded activity files, by format.",
	}, []string{"format"})
	importFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runcoach",
		Subsystem: "importer",
		Name:      "failures_total",
		Help:      "Activity files that could not be parsed, by format.",
	}, []string{"format"})
)

func init() {
	prometheus.MustRegister(plansGenerated, planDuration, runsImported, importFailures)
}

// RecordPlanGenerated counts a plan and observes how long it took.
func RecordPlanGenerated(kind, source string, elapsed time.Duration) {
	plansGenerated.WithLabelValues(kind, source).Inc()
	planDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func RecordRunsImported(format string, count int) {
	if count <= 0 {
		return
	}
	runsImported.WithLabelValues(format).Add(float64(count))
}

func RecordImportFailure(format string) {
	importFailures.WithLabelValues(format).Inc()
}
