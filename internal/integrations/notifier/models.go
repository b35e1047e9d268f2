package notifier

import "time"

// AppointmentDetails данные встречи для уведомлений
type AppointmentDetails struct {
	OwnerID     int64
	Kind        string
	ClientName  string
	ClientEmail string
	ClientPhone *string
	Date        string
	TimeLabel   string
	Start       time.Time
	End         time.Time
	Confirmed   bool // автоподтверждение: "подтверждена" вместо "запрошена"
	Notes       *string
}

// AdminAlert событие о новой встрече для администратора календаря
type AdminAlert struct {
	EventID        string    `json:"event_id"`
	OwnerID        int64     `json:"owner_id"`
	Kind           string    `json:"type"`
	ClientName     string    `json:"client_name"`
	ClientEmail    string    `json:"client_email"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	ConferenceLink *string   `json:"meet_link,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
