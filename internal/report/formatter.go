// Package report renders computed workout metrics as text.
package report

import (
	"fmt"

	"example.com/trainer/internal/domain"
)

const messageTemplate = "Activity type: %s; Duration: %.3f h; Distance: %.3f km; Avg speed: %.3f km/h; Calories burned: %.3f."

// Format renders info as a single summary line with three decimals per number.
// Rounding is to nearest on the exact binary value, ties to even, as done by strconv.
func Format(info domain.InfoMessage) string {
	return fmt.Sprintf(messageTemplate,
		info.TrainingType,
		info.Duration,
		info.Distance,
		info.Speed,
		info.Calories,
	)
}
