package scheduling

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// BuildBusyIntervals converts existing appointments into occupied ranges sorted by start.
// Cancelled, malformed and already finished appointments are dropped; the result is never nil.
func BuildBusyIntervals(
	appointments []*domain.Appointment,
	settings domain.CalendarSettings,
	now time.Time,
	loc *time.Location,
) []domain.BusyInterval {
	busy := make([]domain.BusyInterval, 0, len(appointments))

	fallback := time.Duration(max(settings.DefaultDurationMinutes, domain.MinAppointmentMinutes)) * time.Minute

	for _, appt := range appointments {
		if appt == nil || appt.IsCancelled() {
			continue
		}

		start, ok := appointmentStart(appt, loc)
		if !ok {
			continue
		}

		end := start.Add(fallback)
		if appt.End != nil && appt.End.After(start) {
			end = *appt.End
		}

		if !end.After(now) {
			continue
		}

		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	slices.SortStableFunc(busy, func(a, b domain.BusyInterval) int {
		return a.Start.Compare(b.Start)
	})

	return busy
}

// appointmentStart prefers the stored start and falls back to date + time label
func appointmentStart(appt *domain.Appointment, loc *time.Location) (time.Time, bool) {
	if appt.Start != nil && !appt.Start.IsZero() {
		return *appt.Start, true
	}
	start, err := ResolveStart(appt.Date, appt.TimeLabel, loc)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}
