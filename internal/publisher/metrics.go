package publisher

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "publisher",
		Name:      "summaries_delivered_total",
		Help:      "Number of workout summaries successfully published to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "publisher",
		Name:      "summaries_failed_total",
		Help:      "Number of workout summaries that failed to publish.",
	})

	publishDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trainer",
		Subsystem: "publisher",
		Name:      "publish_duration_seconds",
		Help:      "Time spent encoding and writing a single summary.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, publishDuration)
}
