// Package consumer turns sensor packages read from Kafka into workout summaries.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"example.com/trainer/internal/domain"
	"example.com/trainer/internal/events"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded sensor packages.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is a decoded sensor package together with its Kafka coordinates.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Package   events.SensorPackage
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithRetry sets how many times a transient handler error is attempted for one message and
// the pause between attempts. attempts below 1 is treated as 1.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(p *Processor) {
		if attempts < 1 {
			attempts = 1
		}
		p.attempts = attempts
		p.backoff = backoff
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
//
// Packages that can never succeed (malformed JSON, unknown workout type, bad sensor values)
// are committed and skipped. Other handler errors are retried in place up to the configured
// number of attempts. A message that still fails is logged and counted but left uncommitted, and
// the reader keeps fetching past it, so the next successful commit on the partition covers its
// offset. Delivery of a package that exhausts its retries is at-most-once; it is only
// redelivered if the consumer restarts before a later offset is committed.
type Processor struct {
	reader   Reader
	handler  Handler
	logger   *log.Logger
	attempts int
	backoff  time.Duration
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:   reader,
		handler:  handler,
		logger:   log.New(log.Writer(), "[consumer] ", log.LstdFlags|log.Lshortfile),
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes Kafka messages until the context is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			p.logger.Printf("fetch error: %v", err)
			continue
		}

		event, decodeErr := decodeMessage(msg)
		if decodeErr != nil {
			p.logger.Printf("decode error (topic=%s, partition=%d, offset=%d): %v", msg.Topic, msg.Partition, msg.Offset, decodeErr)
			recordDecodeError(msg.Topic)
			p.commit(ctx, msg)
			continue
		}

		if handleErr := p.handle(ctx, event); handleErr != nil {
			if errors.Is(handleErr, domain.ErrUnknownActivity) {
				p.logger.Printf("rejected package (package_id=%s, workout_type=%q): %v", event.Package.PackageID, event.Package.WorkoutType, handleErr)
				recordRejected(event.Topic)
				p.commit(ctx, msg)
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			p.logger.Printf("handler error, giving up after %d attempts (package_id=%s, workout_type=%q): %v", p.attempts, event.Package.PackageID, event.Package.WorkoutType, handleErr)
			recordHandlerError(event.Topic)
			continue
		}

		if p.commit(ctx, msg) {
			recordProcessed(event)
		}
	}
}

// handle runs the handler, retrying errors that are not permanent rejections.
func (p *Processor) handle(ctx context.Context, event Message) error {
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		err = p.handler.Handle(ctx, event)
		if err == nil || errors.Is(err, domain.ErrUnknownActivity) || attempt == p.attempts {
			return err
		}
		p.logger.Printf("handler error, attempt %d/%d (package_id=%s): %v", attempt, p.attempts, event.Package.PackageID, err)
		if p.backoff > 0 {
			timer := time.NewTimer(p.backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return err
}

func (p *Processor) commit(ctx context.Context, msg kafka.Message) bool {
	if err := p.reader.CommitMessages(ctx, msg); err != nil {
		p.logger.Printf("commit error (topic=%s, offset=%d): %v", msg.Topic, msg.Offset, err)
		return false
	}
	return true
}

func decodeMessage(msg kafka.Message) (Message, error) {
	var pkg events.SensorPackage
	if err := json.Unmarshal(msg.Value, &pkg); err != nil {
		return Message{}, fmt.Errorf("invalid sensor package: %w", err)
	}

	if pkg.PackageID == "" {
		if len(msg.Key) > 0 {
			pkg.PackageID = string(msg.Key)
		} else {
			pkg.PackageID = uuid.NewString()
		}
	}
	if pkg.ReceivedAt.IsZero() {
		pkg.ReceivedAt = msg.Time
	}

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Package:   pkg,
	}, nil
}
