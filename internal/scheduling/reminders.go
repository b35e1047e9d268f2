package scheduling

import "github.com/m04kA/SMC-ShowingService/internal/domain"

// ReminderOverrides are the caller-supplied reminder preferences.
// Nil fields mean "not specified".
type ReminderOverrides struct {
	AgentEnabled      *bool
	AgentLeadMinutes  *int
	ClientEnabled     *bool
	ClientLeadMinutes *int
}

// ResolveReminders derives the reminder configuration of a new appointment.
// A channel is on only when its calendar toggle is on and the caller did not
// switch it off; a disabled channel always has a zero lead time.
func ResolveReminders(overrides ReminderOverrides, settings domain.CalendarSettings) domain.Reminders {
	var r domain.Reminders

	r.AgentEnabled = settings.NewAppointmentAlertsEnabled && !isFalse(overrides.AgentEnabled)
	if r.AgentEnabled {
		r.AgentLeadMinutes = leadMinutes(
			overrides.AgentLeadMinutes,
			max(settings.BufferMinutes, domain.MinAgentReminderLeadMinutes),
		)
	}

	r.ClientEnabled = settings.EmailRemindersEnabled && !isFalse(overrides.ClientEnabled)
	if r.ClientEnabled {
		r.ClientLeadMinutes = leadMinutes(
			overrides.ClientLeadMinutes,
			max(settings.DefaultDurationMinutes, domain.MinClientReminderLeadMinutes),
		)
	}

	return r
}

// leadMinutes uses any explicit override, zero included; the default applies only when none was given.
func leadMinutes(override *int, fallback int) int {
	if override != nil {
		return min(max(*override, 0), domain.MaxReminderLeadMinutes)
	}
	return fallback
}

func isFalse(b *bool) bool {
	return b != nil && !*b
}
