package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ShowingService/pkg/types"
)

// WorkingHours is the daily wall-clock window in which bookings are allowed
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// CalendarSettings is the fully resolved configuration of an owner's calendar
type CalendarSettings struct {
	OwnerID int64

	IntegrationType          *string // external calendar provider, nil = none
	AISchedulingEnabled      bool
	ConflictDetectionEnabled bool

	WorkingHours           WorkingHours
	WorkingDays            []time.Weekday
	DefaultDurationMinutes int
	BufferMinutes          int

	EmailRemindersEnabled       bool
	SMSRemindersEnabled         bool
	NewAppointmentAlertsEnabled bool
	AutoConfirm                 bool

	// Stored is false when the settings come purely from defaults
	Stored bool
}

// IsWorkingDay returns true if the weekday is one of the configured working days
func (s *CalendarSettings) IsWorkingDay(day time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// AdjustsRequestedTime returns true if slot search must run.
// When both toggles are off the requested time is used verbatim.
func (s *CalendarSettings) AdjustsRequestedTime() bool {
	return s.AISchedulingEnabled || s.ConflictDetectionEnabled
}

// HasIntegration returns true if an external calendar provider is configured
func (s *CalendarSettings) HasIntegration() bool {
	return s.IntegrationType != nil && strings.TrimSpace(*s.IntegrationType) != ""
}

// StoredSettings is a possibly partial settings record as persisted.
// Nil fields fall back to defaults.
type StoredSettings struct {
	OwnerID int64

	IntegrationType          *string
	AISchedulingEnabled      *bool
	ConflictDetectionEnabled *bool

	WorkingHoursStart      *types.TimeString
	WorkingHoursEnd        *types.TimeString
	WorkingDays            []time.Weekday // nil = default
	DefaultDurationMinutes *int
	BufferMinutes          *int

	EmailRemindersEnabled       *bool
	SMSRemindersEnabled         *bool
	NewAppointmentAlertsEnabled *bool
	AutoConfirm                 *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendarSettings returns the built-in configuration used when nothing is stored
func DefaultCalendarSettings(ownerID int64) CalendarSettings {
	days := make([]time.Weekday, len(DefaultWorkingDays))
	copy(days, DefaultWorkingDays)

	return CalendarSettings{
		OwnerID:                  ownerID,
		AISchedulingEnabled:      true,
		ConflictDetectionEnabled: true,
		WorkingHours: WorkingHours{
			Start: DefaultWorkingHoursStart,
			End:   DefaultWorkingHoursEnd,
		},
		WorkingDays:                 days,
		DefaultDurationMinutes:      DefaultDurationMinutes,
		BufferMinutes:               DefaultBufferMinutes,
		EmailRemindersEnabled:       true,
		SMSRemindersEnabled:         true,
		NewAppointmentAlertsEnabled: true,
		AutoConfirm:                 false,
	}
}

// MergeSettings overlays a stored (possibly partial) record onto defaults.
// A nil record yields pure defaults.
func MergeSettings(ownerID int64, stored *StoredSettings) CalendarSettings {
	s := DefaultCalendarSettings(ownerID)
	if stored == nil {
		return s
	}

	s.Stored = true
	s.IntegrationType = stored.IntegrationType

	if stored.AISchedulingEnabled != nil {
		s.AISchedulingEnabled = *stored.AISchedulingEnabled
	}
	if stored.ConflictDetectionEnabled != nil {
		s.ConflictDetectionEnabled = *stored.ConflictDetectionEnabled
	}
	if stored.WorkingHoursStart != nil && stored.WorkingHoursStart.Validate() == nil {
		s.WorkingHours.Start = *stored.WorkingHoursStart
	}
	if stored.WorkingHoursEnd != nil && stored.WorkingHoursEnd.Validate() == nil {
		s.WorkingHours.End = *stored.WorkingHoursEnd
	}
	if stored.WorkingDays != nil {
		s.WorkingDays = append([]time.Weekday(nil), stored.WorkingDays...)
	}
	if stored.DefaultDurationMinutes != nil && *stored.DefaultDurationMinutes >= 0 {
		s.DefaultDurationMinutes = *stored.DefaultDurationMinutes
	}
	if stored.BufferMinutes != nil && *stored.BufferMinutes >= 0 {
		s.BufferMinutes = *stored.BufferMinutes
	}
	if stored.EmailRemindersEnabled != nil {
		s.EmailRemindersEnabled = *stored.EmailRemindersEnabled
	}
	if stored.SMSRemindersEnabled != nil {
		s.SMSRemindersEnabled = *stored.SMSRemindersEnabled
	}
	if stored.NewAppointmentAlertsEnabled != nil {
		s.NewAppointmentAlertsEnabled = *stored.NewAppointmentAlertsEnabled
	}
	if stored.AutoConfirm != nil {
		s.AutoConfirm = *stored.AutoConfirm
	}

	return s
}

// ParseWeekday parses a weekday name ("Monday", "mon", ...)
func ParseWeekday(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, true
		}
	}
	return 0, false
}

// WeekdayNames returns the English names of the weekdays
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}
