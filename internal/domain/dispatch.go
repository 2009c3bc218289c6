package domain

import (
	"fmt"
	"math"
)

// Workout type codes sent by the tracker.
const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

// workoutSpec describes the positional layout of a sensor package for one workout type.
type workoutSpec struct {
	Arity int
	Build func(data []float64) (Workout, error)
}

var workoutCatalog = map[string]workoutSpec{
	CodeSwimming: {
		Arity: 5,
		Build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			count, err := wholeNumber("pool count", data[4])
			if err != nil {
				return nil, err
			}
			w, err := NewSwimming(action, data[1], data[2], data[3], count)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
	CodeRunning: {
		Arity: 3,
		Build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			w, err := NewRunning(action, data[1], data[2])
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
	CodeWalking: {
		Arity: 4,
		Build: func(data []float64) (Workout, error) {
			action, err := wholeNumber("action", data[0])
			if err != nil {
				return nil, err
			}
			w, err := NewSportsWalking(action, data[1], data[2], data[3])
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	},
}

// KnownWorkoutType reports whether code names one of the supported workout types.
func KnownWorkoutType(code string) bool {
	_, ok := workoutCatalog[code]
	return ok
}

// ReadPackage builds the Workout for a sensor package. data is positional:
//
//	RUN: action, duration, weight
//	WLK: action, duration, weight, height
//	SWM: action, duration, weight, pool length, pool count
//
// Every failure is an *UnknownActivityError wrapping the underlying cause.
func ReadPackage(workoutType string, data []float64) (Workout, error) {
	spec, ok := workoutCatalog[workoutType]
	if !ok {
		return nil, &UnknownActivityError{Code: workoutType}
	}
	if len(data) != spec.Arity {
		return nil, &UnknownActivityError{
			Code: workoutType,
			Err:  fmt.Errorf("%w: expected %d values, got %d", ErrInvalidValue, spec.Arity, len(data)),
		}
	}
	w, err := spec.Build(data)
	if err != nil {
		return nil, &UnknownActivityError{Code: workoutType, Err: err}
	}
	return w, nil
}

// wholeNumber converts value to an int, rejecting fractions and anything outside the int64 range.
func wholeNumber(field string, value float64) (int, error) {
	if math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidValue, field, value)
	}
	if value >= 1<<63 || value < -(1<<63) || int64(int(value)) != int64(value) {
		return 0, fmt.Errorf("%w: %s out of range, got %v", ErrInvalidValue, field, value)
	}
	return int(value), nil
}
