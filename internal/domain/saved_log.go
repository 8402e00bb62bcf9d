package domain

import (
	"fmt"
	"time"
)

// SavedLog is an immutable snapshot of a finished arrest, handed to the persistence gateway.
// Events are stored oldest first.
type SavedLog struct {
	Counters             map[string]int
	Events               []Event
	ID                   string
	Outcome              string
	StartedAt            time.Time
	TotalDurationSeconds float64
}

// FormatDuration renders seconds as mm:ss, clamping negative values to zero
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
