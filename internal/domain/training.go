// Package domain computes distance, mean speed and calories burned from raw workout sensor readings.
package domain

import (
	"fmt"
	"math"
)

const (
	LenStep     = 0.65 // metres covered by one step
	SwimLenStep = 1.38 // metres covered by one swimming stroke
	MInKm       = 1000
	MinInHour   = 60
)

// Training holds the readings shared by every workout type. The zero value is not valid;
// use one of the variant constructors.
type Training struct {
	action   int
	duration float64
	weight   float64
}

func newTraining(action int, duration, weight float64) (Training, error) {
	if !(duration > 0) || math.IsInf(duration, 1) {
		return Training{}, fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}
	return Training{action: action, duration: duration, weight: weight}, nil
}

// Action is the number of steps or strokes recorded by the sensor.
func (t Training) Action() int { return t.action }

// Duration is the workout length in hours.
func (t Training) Duration() float64 { return t.duration }

// Weight is the athlete's weight in kilograms.
func (t Training) Weight() float64 { return t.weight }

func (t Training) distance(step float64) float64 {
	return float64(t.action) * step / MInKm
}

// InfoMessage carries the metrics computed for one workout.
type InfoMessage struct {
	TrainingType string
	Duration     float64 // hours
	Distance     float64 // km
	Speed        float64 // km/h
	Calories     float64
}

// checkFinite rejects workouts whose derived metrics overflow, so callers never see Inf or NaN.
func checkFinite(w Workout) error {
	for _, v := range []float64{w.Distance(), w.MeanSpeed(), w.SpentCalories()} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: distance=%v speed=%v calories=%v", ErrNonFiniteMetrics, w.Distance(), w.MeanSpeed(), w.SpentCalories())
		}
	}
	return nil
}

// floorDiv is floor division computed from the fmod remainder, so quotients that round up to
// an integer under plain division (1 / 0.1) still floor to the lower value (9, not 10).
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div--
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}
	return floor
}

func newInfoMessage(trainingType string, w Workout, duration float64) InfoMessage {
	return InfoMessage{
		TrainingType: trainingType,
		Duration:     duration,
		Distance:     w.Distance(),
		Speed:        w.MeanSpeed(),
		Calories:     w.SpentCalories(),
	}
}
