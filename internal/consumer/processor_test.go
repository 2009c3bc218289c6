package consumer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/trainer/internal/domain"
)

func TestProcessorCommitsOnSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:     "sensor_packages",
		Partition: 0,
		Offset:    10,
		Time:      time.Now().UTC(),
		Value:     []byte(`{"package_id":"pkg-1","workout_type":"RUN","data":[15000,1,75]}`),
	}

	reader := &stubReader{messages: []kafka.Message{msg}}
	handler := &stubHandler{}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
	require.Equal(t, "pkg-1", handler.last.Package.PackageID)
	require.Equal(t, "RUN", handler.last.Package.WorkoutType)
	require.Equal(t, []float64{15000, 1, 75}, handler.last.Package.Data)
	require.Equal(t, msg.Time, handler.last.Package.ReceivedAt)
	require.Equal(t, int64(10), handler.last.Offset)
}

func TestProcessorSkipsCommitOnHandlerError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:  "sensor_packages",
		Offset: 20,
		Value:  []byte(`{"workout_type":"WLK","data":[9000,1,75,180]}`),
	}

	reader := &stubReader{messages: []kafka.Message{msg}}
	handler := &stubHandler{err: errors.New("broker unavailable")}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)), WithRetry(3, 0))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 3, handler.calls)
	require.Equal(t, 0, reader.commitCalls)
}

func TestProcessorCommitsAfterTransientHandlerError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{messages: []kafka.Message{
		{Topic: "sensor_packages", Offset: 21, Value: []byte(`{"workout_type":"RUN","data":[15000,1,75]}`)},
	}}
	handler := &stubHandler{err: errors.New("leader not available"), failures: 1}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)), WithRetry(3, 0))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 2, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
}

func TestProcessorDoesNotRetryRejections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{messages: []kafka.Message{
		{Topic: "sensor_packages", Offset: 22, Value: []byte(`{"workout_type":"RUN","data":[15000,1e-320,75]}`)},
	}}
	handler := NewSummaryHandler(&stubPublisher{})
	counting := &countingHandler{next: handler}

	processor := NewProcessor(reader, counting, WithLogger(log.New(testWriter{t}, "", 0)), WithRetry(3, 0))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, counting.calls)
	require.Equal(t, 1, reader.commitCalls)
}

func TestProcessorStopsRetryingWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{messages: []kafka.Message{
		{Topic: "sensor_packages", Offset: 23, Value: []byte(`{"workout_type":"RUN","data":[15000,1,75]}`)},
	}}
	handler := &stubHandler{err: errors.New("broker unavailable"), onCall: cancel}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)), WithRetry(5, time.Minute))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 0, reader.commitCalls)
}

func TestProcessorCommitsRejectedPackages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:  "sensor_packages",
		Offset: 30,
		Value:  []byte(`{"workout_type":"XYZ","data":[1,2,3]}`),
	}

	reader := &stubReader{messages: []kafka.Message{msg}}
	handler := &stubHandler{err: fmt.Errorf("dispatch: %w", &domain.UnknownActivityError{Code: "XYZ"})}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
}

func TestProcessorCommitsMalformedPayload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &stubReader{messages: []kafka.Message{
		{Topic: "sensor_packages", Offset: 40, Value: []byte(`not json`)},
	}}
	handler := &stubHandler{}

	processor := NewProcessor(reader, handler, WithLogger(log.New(testWriter{t}, "", 0)))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 0, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
}

func TestDecodeMessageFallsBackToKeyThenUUID(t *testing.T) {
	keyed, err := decodeMessage(kafka.Message{
		Key:   []byte("tracker-7:42"),
		Value: []byte(`{"workout_type":"RUN","data":[1,1,1]}`),
	})
	require.NoError(t, err)
	require.Equal(t, "tracker-7:42", keyed.Package.PackageID)

	anonymous, err := decodeMessage(kafka.Message{
		Value: []byte(`{"workout_type":"RUN","data":[1,1,1]}`),
	})
	require.NoError(t, err)
	require.Len(t, anonymous.Package.PackageID, 36)
}

type stubReader struct {
	messages    []kafka.Message
	index       int
	commitCalls int
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if r.index >= len(r.messages) {
		return kafka.Message{}, context.Canceled
	}
	msg := r.messages[r.index]
	r.index++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCalls++
	return nil
}

func (r *stubReader) Close() error { return nil }

// stubHandler returns err on every call, or only on the first failures calls when failures is set.
type stubHandler struct {
	calls    int
	err      error
	failures int
	onCall   func()
	last     Message
}

func (h *stubHandler) Handle(_ context.Context, msg Message) error {
	h.calls++
	h.last = msg
	if h.onCall != nil {
		h.onCall()
	}
	if h.failures > 0 && h.calls > h.failures {
		return nil
	}
	return h.err
}

type countingHandler struct {
	next  Handler
	calls int
}

func (h *countingHandler) Handle(ctx context.Context, msg Message) error {
	h.calls++
	return h.next.Handle(ctx, msg)
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Log(string(p))
	return len(p), nil
}
