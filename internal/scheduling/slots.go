package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// SearchResult is the outcome of a slot search
type SearchResult struct {
	Slot       domain.Slot
	Iterations int
	Adjusted   bool // true if the slot differs from the requested one
}

// FindSlot returns the earliest slot at or after desired that lies inside working
// hours of a working day and does not overlap any busy interval widened by the
// buffer. The search only moves forward: a conflict pushes the candidate to the
// end of the buffered interval, a day overflow moves it to the next day's start.
// busy must be sorted by start.
func FindSlot(
	desired time.Time,
	durationMinutes int,
	settings domain.CalendarSettings,
	busy []domain.BusyInterval,
	loc *time.Location,
) (SearchResult, error) {
	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(settings.BufferMinutes) * time.Minute

	candidate := desired.In(loc)

	for i := 1; i <= domain.SlotSearchMaxIterations; i++ {
		if !settings.IsWorkingDay(candidate.Weekday()) {
			candidate = nextDay(candidate, loc)
			continue
		}

		workStart, err := settings.WorkingHours.Start.On(candidate, loc)
		if err != nil {
			return SearchResult{}, fmt.Errorf("%w: working hours start: %v", ErrNoAvailableSlot, err)
		}
		workEnd, err := settings.WorkingHours.End.On(candidate, loc)
		if err != nil {
			return SearchResult{}, fmt.Errorf("%w: working hours end: %v", ErrNoAvailableSlot, err)
		}

		if candidate.Before(workStart) {
			candidate = workStart
		}

		end := candidate.Add(duration)
		if end.After(workEnd) {
			candidate = nextDay(candidate, loc)
			continue
		}

		if conflict, ok := firstConflict(candidate, end, busy, buffer); ok {
			candidate = conflict.End
			continue
		}

		return SearchResult{
			Slot:       domain.Slot{Start: candidate, End: end},
			Iterations: i,
			Adjusted:   !candidate.Equal(desired),
		}, nil
	}

	return SearchResult{Iterations: domain.SlotSearchMaxIterations},
		fmt.Errorf("%w: searched %d steps from %s", ErrNoAvailableSlot, domain.SlotSearchMaxIterations, desired.Format(time.RFC3339))
}

// RawSlot returns the requested slot unchanged (slot search bypass)
func RawSlot(desired time.Time, durationMinutes int, loc *time.Location) domain.Slot {
	start := desired.In(loc)
	return domain.Slot{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// firstConflict returns the first buffer-expanded busy interval overlapping [start, end)
func firstConflict(start, end time.Time, busy []domain.BusyInterval, buffer time.Duration) (domain.BusyInterval, bool) {
	for _, b := range busy {
		expanded := b.Expand(buffer)
		// busy отсортирован по началу: дальше пересечений быть не может
		if !expanded.Start.Before(end) {
			break
		}
		if expanded.Overlaps(start, end) {
			return expanded, true
		}
	}
	return domain.BusyInterval{}, false
}

// nextDay returns midnight of the following calendar day in loc
func nextDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
