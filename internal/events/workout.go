// Package events defines the payloads exchanged with the tracker stream.
package events

import "time"

// WorkoutSummarizedType is the event_type header attached to published summaries.
const WorkoutSummarizedType = "workout.summarized"

// SensorPackage is one raw reading bundle sent by a fitness tracker.
type SensorPackage struct {
	PackageID   string    `json:"package_id,omitempty"`
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
	ReceivedAt  time.Time `json:"received_at,omitzero"`
}

// WorkoutSummarized is emitted once metrics for a sensor package have been computed.
type WorkoutSummarized struct {
	PackageID    string    `json:"package_id"`
	WorkoutType  string    `json:"workout_type"`
	TrainingType string    `json:"training_type"`
	Duration     float64   `json:"duration_h"`
	Distance     float64   `json:"distance_km"`
	Speed        float64   `json:"speed_kmh"`
	Calories     float64   `json:"calories"`
	Message      string    `json:"message"`
	ComputedAt   time.Time `json:"computed_at"`
}
