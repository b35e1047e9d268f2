package schedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/scheduling"
	scheduleAppointment "github.com/m04kA/SMC-ShowingService/internal/usecase/schedule_appointment"
)

// RemindersRequest пожелания клиента по напоминаниям
type RemindersRequest struct {
	AgentEnabled      *bool `json:"agentEnabled,omitempty"`
	AgentLeadMinutes  *int  `json:"agentLeadMinutes,omitempty"`
	ClientEnabled     *bool `json:"clientEnabled,omitempty"`
	ClientLeadMinutes *int  `json:"clientLeadMinutes,omitempty"`
}

// ScheduleAppointmentRequest HTTP request model
type ScheduleAppointmentRequest struct {
	ClientName      string            `json:"clientName"`
	ClientEmail     string            `json:"clientEmail"`
	ClientPhone     *string           `json:"clientPhone,omitempty"`
	Date            string            `json:"date"` // "2024-01-15" или "01/15/2024"
	Time            string            `json:"time"` // "2:00 PM", "morning", ...
	Type            string            `json:"type,omitempty"`
	LeadID          *int64            `json:"leadId,omitempty"`
	PropertyID      *int64            `json:"propertyId,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	DurationMinutes int               `json:"duration,omitempty"`
	Status          *string           `json:"status,omitempty"`
	Reminders       *RemindersRequest `json:"reminders,omitempty"`
}

// RemindersResponse итоговые напоминания
type RemindersResponse struct {
	AgentEnabled      bool `json:"agentEnabled"`
	AgentLeadMinutes  int  `json:"agentLeadMinutes"`
	ClientEnabled     bool `json:"clientEnabled"`
	ClientLeadMinutes int  `json:"clientLeadMinutes"`
}

// WarningResponse некритичный сбой побочного шага
type WarningResponse struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ScheduleAppointmentResponse HTTP response model
type ScheduleAppointmentResponse struct {
	ID              *int64            `json:"id"` // null, если сохранение не подтверждено
	Persisted       bool              `json:"persisted"`
	PersistedBy     string            `json:"persistedBy,omitempty"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Start           string            `json:"start"`
	End             string            `json:"end"`
	DurationMinutes int               `json:"duration"`
	Adjusted        bool              `json:"adjusted"`
	Type            string            `json:"type"`
	Status          string            `json:"status"`
	Confirmed       bool              `json:"confirmed"`
	Reminders       RemindersResponse `json:"reminders"`
	ConferenceLink  *string           `json:"conferenceLink,omitempty"`
	ExternalEventID *string           `json:"externalEventId,omitempty"`
	Warnings        []WarningResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Тип встречи по умолчанию - показ объекта
func (r *ScheduleAppointmentRequest) ToUseCaseRequest(ownerID int64) *scheduleAppointment.Request {
	kind := domain.KindShowing
	if r.Type != "" {
		kind = domain.AppointmentKind(r.Type)
	}

	req := &scheduleAppointment.Request{
		OwnerID:         ownerID,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		Date:            r.Date,
		Time:            r.Time,
		Kind:            kind,
		LeadID:          r.LeadID,
		PropertyID:      r.PropertyID,
		Notes:           r.Notes,
		DurationMinutes: r.DurationMinutes,
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		req.Status = &status
	}

	if r.Reminders != nil {
		req.Reminders = scheduling.ReminderOverrides{
			AgentEnabled:      r.Reminders.AgentEnabled,
			AgentLeadMinutes:  r.Reminders.AgentLeadMinutes,
			ClientEnabled:     r.Reminders.ClientEnabled,
			ClientLeadMinutes: r.Reminders.ClientLeadMinutes,
		}
	}

	return req
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *scheduleAppointment.Response) *ScheduleAppointmentResponse {
	warnings := make([]WarningResponse, 0, len(resp.Warnings))
	for _, w := range resp.Warnings {
		warnings = append(warnings, WarningResponse{Step: w.Step, Message: w.Message})
	}

	return &ScheduleAppointmentResponse{
		ID:              resp.AppointmentID,
		Persisted:       resp.AppointmentID != nil,
		PersistedBy:     resp.PersistedBy,
		Date:            resp.Date,
		Time:            resp.TimeLabel,
		Start:           resp.Start.Format(time.RFC3339),
		End:             resp.End.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Adjusted:        resp.Adjusted,
		Type:            string(resp.Kind),
		Status:          string(resp.Status),
		Confirmed:       resp.Confirmed,
		Reminders: RemindersResponse{
			AgentEnabled:      resp.Reminders.AgentEnabled,
			AgentLeadMinutes:  resp.Reminders.AgentLeadMinutes,
			ClientEnabled:     resp.Reminders.ClientEnabled,
			ClientLeadMinutes: resp.Reminders.ClientLeadMinutes,
		},
		ConferenceLink:  resp.ConferenceLink,
		ExternalEventID: resp.ExternalEventID,
		Warnings:        warnings,
	}
}
