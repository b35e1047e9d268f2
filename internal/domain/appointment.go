package domain

import "time"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// AppointmentKind is the type of meeting being booked
type AppointmentKind string

const (
	KindShowing      AppointmentKind = "Showing"
	KindConsultation AppointmentKind = "Consultation"
	KindOpenHouse    AppointmentKind = "Open House"
	KindVirtualTour  AppointmentKind = "Virtual Tour"
	KindFollowUp     AppointmentKind = "Follow-up"
)

// IsValid returns true for a known kind
func (k AppointmentKind) IsValid() bool {
	switch k {
	case KindShowing, KindConsultation, KindOpenHouse, KindVirtualTour, KindFollowUp:
		return true
	}
	return false
}

// Reminders is the resolved reminder configuration of an appointment
type Reminders struct {
	AgentEnabled      bool
	AgentLeadMinutes  int
	ClientEnabled     bool
	ClientLeadMinutes int
}

// Appointment is a booked meeting owned by a calendar owner.
// Start/End may be nil for records imported without concrete instants;
// those are resolved from Date + TimeLabel.
type Appointment struct {
	ID      int64
	OwnerID int64 // 0 = anonymous booking (no backing account)

	Kind   AppointmentKind
	Status AppointmentStatus

	ClientName  string
	ClientEmail string
	ClientPhone *string

	LeadID     *int64
	PropertyID *int64

	Date      string // YYYY-MM-DD
	TimeLabel string // free-form label as entered, e.g. "2:00 PM"
	Start     *time.Time
	End       *time.Time

	ConferenceLink  *string
	ExternalEventID *string
	Reminders       Reminders
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanTransitionTo returns true if the status change is allowed.
// Only scheduled appointments can be completed or cancelled.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != StatusScheduled {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// AppointmentFilter фильтр для получения встреч владельца календаря
type AppointmentFilter struct {
	OwnerID int64
	Status  *AppointmentStatus // nil - все статусы
	From    *time.Time         // включительно, по start_time
	To      *time.Time         // исключительно, по start_time
}
