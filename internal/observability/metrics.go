package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsSummarizedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "workouts",
		Name:      "summarized_total",
		Help:      "Number of sensor packages turned into workout summaries, by training type.",
	}, []string{"training_type"})

	rejectedPackagesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "workouts",
		Name:      "rejected_packages_total",
		Help:      "Number of sensor packages rejected by the dispatcher, by workout type code.",
	}, []string{"workout_type"})

	lastSummaryGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "workouts",
		Name:      "last_summary_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout summary.",
	})
)

func init() {
	prometheus.MustRegister(workoutsSummarizedCounter, rejectedPackagesCounter, lastSummaryGauge)
}

// RecordSummary counts a computed summary and moves the summary watermark.
func RecordSummary(trainingType string, ts time.Time) {
	workoutsSummarizedCounter.WithLabelValues(trainingType).Inc()
	if ts.IsZero() {
		return
	}
	lastSummaryGauge.Set(float64(ts.Unix()))
}

// RecordRejectedPackage counts a package the dispatcher refused. Unrecognised codes share one
// label value so arbitrary input cannot grow the series count.
func RecordRejectedPackage(workoutType string, known bool) {
	if !known {
		workoutType = "unrecognized"
	}
	rejectedPackagesCounter.WithLabelValues(workoutType).Inc()
}
