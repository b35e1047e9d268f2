package backend

import "time"

// AppointmentPayload тело запроса на создание встречи
type AppointmentPayload struct {
	OwnerID               *int64    `json:"owner_id,omitempty"`
	Kind                  string    `json:"type"`
	Status                string    `json:"status"`
	ClientName            string    `json:"client_name"`
	ClientEmail           string    `json:"client_email"`
	ClientPhone           *string   `json:"client_phone,omitempty"`
	LeadID                *int64    `json:"lead_id,omitempty"`
	PropertyID            *int64    `json:"property_id,omitempty"`
	Date                  string    `json:"date"`
	Time                  string    `json:"time"`
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	ConferenceLink        *string   `json:"meet_link,omitempty"`
	ExternalEventID       *string   `json:"external_event_id,omitempty"`
	AgentReminderEnabled  bool      `json:"agent_reminder"`
	AgentReminderMinutes  int       `json:"agent_reminder_minutes"`
	ClientReminderEnabled bool      `json:"client_reminder"`
	ClientReminderMinutes int       `json:"client_reminder_minutes"`
	Notes                 *string   `json:"notes,omitempty"`
}

// CreatedAppointment ответ на создание встречи
type CreatedAppointment struct {
	ID int64 `json:"id"`
}
