package consumer

import (
	"context"
	"fmt"
	"time"

	"example.com/trainer/internal/domain"
	"example.com/trainer/internal/events"
	"example.com/trainer/internal/observability"
	"example.com/trainer/internal/report"
)

// Publisher delivers computed summaries downstream.
type Publisher interface {
	Publish(context.Context, events.WorkoutSummarized) error
}

// SummaryHandler computes workout metrics for each sensor package and publishes the result.
type SummaryHandler struct {
	publisher Publisher
	now       func() time.Time
}

// NewSummaryHandler constructs a handler that publishes through the provided Publisher.
func NewSummaryHandler(publisher Publisher) *SummaryHandler {
	return &SummaryHandler{publisher: publisher, now: time.Now}
}

// Handle dispatches the package to its workout model. Dispatcher errors are returned as is so
// the processor can recognise them with errors.Is(err, domain.ErrUnknownActivity).
func (h *SummaryHandler) Handle(ctx context.Context, msg Message) error {
	pkg := msg.Package
	workout, err := domain.ReadPackage(pkg.WorkoutType, pkg.Data)
	if err != nil {
		observability.RecordRejectedPackage(pkg.WorkoutType, domain.KnownWorkoutType(pkg.WorkoutType))
		return err
	}

	info := workout.TrainingInfo()
	computedAt := h.now().UTC()
	summary := events.WorkoutSummarized{
		PackageID:    pkg.PackageID,
		WorkoutType:  pkg.WorkoutType,
		TrainingType: info.TrainingType,
		Duration:     info.Duration,
		Distance:     info.Distance,
		Speed:        info.Speed,
		Calories:     info.Calories,
		Message:      report.Format(info),
		ComputedAt:   computedAt,
	}

	if err := h.publisher.Publish(ctx, summary); err != nil {
		return fmt.Errorf("publish summary for package %s: %w", pkg.PackageID, err)
	}
	observability.RecordSummary(info.TrainingType, computedAt)
	return nil
}
