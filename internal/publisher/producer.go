// Package publisher delivers workout summaries to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/trainer/internal/events"
)

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// KafkaProducer lazily manages writers per topic.
type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages writes messages to the given topic, creating a writer if necessary.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	writer := p.writerForTopic(topic)
	return writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
	}
	p.writers[topic] = writer
	return writer
}

// Close releases all writers.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}

// SummaryPublisher encodes summaries as JSON and writes them to a single topic,
// keyed by package ID so retries of one package land on the same partition.
type SummaryPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewSummaryPublisher constructs a SummaryPublisher. A zero timeout relies on ctx alone.
func NewSummaryPublisher(writer messageWriter, topic string, timeout time.Duration) *SummaryPublisher {
	return &SummaryPublisher{writer: writer, topic: topic, timeout: timeout}
}

// Publish writes one summary.
func (p *SummaryPublisher) Publish(ctx context.Context, summary events.WorkoutSummarized) error {
	start := time.Now()
	defer func() { publishDuration.Observe(time.Since(start).Seconds()) }()

	body, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	record := kafka.Message{
		Key:   []byte(summary.PackageID),
		Value: body,
		Time:  summary.ComputedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.WorkoutSummarizedType)},
			{Key: "training_type", Value: []byte(summary.TrainingType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, p.topic, record); err != nil {
		failedCounter.Inc()
		return err
	}
	deliveredCounter.Inc()
	return nil
}
