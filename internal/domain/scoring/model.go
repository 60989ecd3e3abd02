package scoring

import (
	"fmt"
	"time"
)

// WeeklyPerformance is one player's stat line for one game week. TotalPoints
// is a cache derived from the counters by the engine; the counters stay the
// source of truth.
type WeeklyPerformance struct {
	ID          string
	PlayerID    string
	Week        int
	Goals       int
	Assists     int
	CleanSheets int
	Saves       int
	Tackles     int
	TotalPoints int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (w WeeklyPerformance) Validate() error {
	if w.PlayerID == "" {
		return fmt.Errorf("performance player id is required")
	}
	if w.Week < 1 {
		return fmt.Errorf("performance week must be positive, got %d", w.Week)
	}
	if w.Goals < 0 || w.Assists < 0 || w.CleanSheets < 0 || w.Saves < 0 || w.Tackles < 0 {
		return fmt.Errorf("performance counters cannot be negative")
	}

	return nil
}
