package domain

import "time"

// BusyInterval is an occupied half-open range [Start, End) derived from an existing appointment
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Expand returns the interval widened by buffer on both ends
func (b BusyInterval) Expand(buffer time.Duration) BusyInterval {
	return BusyInterval{
		Start: b.Start.Add(-buffer),
		End:   b.End.Add(buffer),
	}
}

// Overlaps returns true if [start, end) intersects the interval.
// Touching ends are not an overlap.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// Slot is a concrete resolved start/end pair for a new appointment
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// DurationMinutes returns the slot length in whole minutes
func (s Slot) DurationMinutes() int {
	return int(s.Duration() / time.Minute)
}
