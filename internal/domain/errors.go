package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownActivity is matched by every error returned from ReadPackage.
	ErrUnknownActivity = errors.New("unknown activity")
	// ErrInvalidDuration is returned when a workout duration is not a positive finite number of hours.
	ErrInvalidDuration = errors.New("duration must be a positive finite number of hours")
	// ErrInvalidHeight is returned when a walker's height is not a positive number of centimetres.
	ErrInvalidHeight = errors.New("height must be a positive number of centimetres")
	// ErrNonFiniteMetrics is returned when the readings would produce an infinite or NaN metric,
	// e.g. a subnormal duration.
	ErrNonFiniteMetrics = errors.New("workout metrics are not finite")
	// ErrInvalidValue flags a sensor value of the wrong kind, e.g. a fractional step count.
	ErrInvalidValue = errors.New("invalid sensor value")
)

// UnknownActivityError reports a workout package that could not be turned into a Workout.
// Err is nil when the code itself is not recognised.
type UnknownActivityError struct {
	Code string
	Err  error
}

func (e *UnknownActivityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unknown workout type %q", e.Code)
	}
	return fmt.Sprintf("invalid %q package: %v", e.Code, e.Err)
}

// Is lets errors.Is(err, ErrUnknownActivity) match any UnknownActivityError.
func (e *UnknownActivityError) Is(target error) bool {
	return target == ErrUnknownActivity
}

func (e *UnknownActivityError) Unwrap() error {
	return e.Err
}
