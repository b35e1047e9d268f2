package domain

import (
	"time"

	"github.com/m04kA/SMC-ShowingService/pkg/types"
)

// Default calendar configuration values
const (
	DefaultWorkingHoursStart types.TimeString = "09:00"
	DefaultWorkingHoursEnd   types.TimeString = "17:00"
	DefaultDurationMinutes                    = 60
	DefaultBufferMinutes                      = 15
)

// DefaultWorkingDays Monday through Friday
var DefaultWorkingDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// Scheduling constants
const (
	// MinAppointmentMinutes is the floor applied to a fallback duration
	MinAppointmentMinutes = 15

	// SlotSearchMaxIterations bounds the greedy slot search
	SlotSearchMaxIterations = 365

	// Reminder lead-time floors (minutes)
	MinAgentReminderLeadMinutes  = 30
	MinClientReminderLeadMinutes = 60
)

// Business validation constants
const (
	MaxDurationMinutes     = 480 // 8 hours
	MaxBufferMinutes       = 240
	MaxReminderLeadMinutes = 10080 // 1 week
	MaxNotesLength         = 500
	MaxNameLength          = 200
)

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	TimeLabelFormat   = "3:04 PM"
	USDateFormat      = "01/02/2006" // MM/DD/YYYY
	USDateFormatLoose = "1/2/2006"
)
