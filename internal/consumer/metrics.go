package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "consumer",
		Name:      "messages_processed_total",
		Help:      "Number of sensor packages summarized and committed.",
	}, []string{"topic", "workout_type"})

	handlerErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "consumer",
		Name:      "handler_errors_total",
		Help:      "Number of packages whose handler kept failing after all retry attempts.",
	}, []string{"topic"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "consumer",
		Name:      "rejected_total",
		Help:      "Number of sensor packages committed without a summary because the dispatcher rejected them.",
	}, []string{"topic"})

	decodeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "consumer",
		Name:      "decode_errors_total",
		Help:      "Number of decode failures per topic.",
	}, []string{"topic"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "consumer",
		Name:      "last_message_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successfully processed message per topic.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(processedCounter, handlerErrorCounter, rejectedCounter, decodeErrorCounter, lastMessageGauge)
}

func recordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.Topic, msg.Package.WorkoutType).Inc()
	if !msg.Timestamp.IsZero() {
		lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}

func recordHandlerError(topic string) {
	handlerErrorCounter.WithLabelValues(topic).Inc()
}

func recordRejected(topic string) {
	rejectedCounter.WithLabelValues(topic).Inc()
}

func recordDecodeError(topic string) {
	decodeErrorCounter.WithLabelValues(topic).Inc()
}
