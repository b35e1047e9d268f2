package conferencing

import "time"

// EventRequest событие календаря с видеовстречей
type EventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
}

// Event созданное событие
type Event struct {
	EventID  string  `json:"event_id"`
	MeetLink *string `json:"meet_link,omitempty"`
}
