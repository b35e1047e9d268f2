package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListByOwnerRequest запрос на получение встреч владельца календаря
type ListByOwnerRequest struct {
	UserID  int64      `json:"-"`
	OwnerID int64      `json:"-"`
	Status  *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	From    *time.Time `json:"from,omitempty"`   // Начало периода (опционально)
	To      *time.Time `json:"to,omitempty"`     // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByOwnerRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		OwnerID: r.OwnerID,
		From:    r.From,
		To:      r.To,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// RemindersResponse настройки напоминаний встречи
type RemindersResponse struct {
	AgentEnabled      bool `json:"agentEnabled"`
	AgentLeadMinutes  int  `json:"agentLeadMinutes"`
	ClientEnabled     bool `json:"clientEnabled"`
	ClientLeadMinutes int  `json:"clientLeadMinutes"`
}

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId,omitempty"`
	Kind        string  `json:"kind"`
	Status      string  `json:"status"`
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	LeadID      *int64  `json:"leadId,omitempty"`
	PropertyID  *int64  `json:"propertyId,omitempty"`

	Date  string  `json:"date"` // "2024-01-15"
	Time  string  `json:"time"` // "2:00 PM"
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`

	ConferenceLink *string           `json:"conferenceLink,omitempty"`
	Reminders      RemindersResponse `json:"reminders"`
	Notes          *string           `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:             a.ID,
		OwnerID:        a.OwnerID,
		Kind:           string(a.Kind),
		Status:         string(a.Status),
		ClientName:     a.ClientName,
		ClientEmail:    a.ClientEmail,
		ClientPhone:    a.ClientPhone,
		LeadID:         a.LeadID,
		PropertyID:     a.PropertyID,
		Date:           a.Date,
		Time:           a.TimeLabel,
		Start:          formatInstant(a.Start),
		End:            formatInstant(a.End),
		ConferenceLink: a.ConferenceLink,
		Reminders: RemindersResponse{
			AgentEnabled:      a.Reminders.AgentEnabled,
			AgentLeadMinutes:  a.Reminders.AgentLeadMinutes,
			ClientEnabled:     a.Reminders.ClientEnabled,
			ClientLeadMinutes: a.Reminders.ClientLeadMinutes,
		},
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if a == nil {
			continue
		}
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus (без учета регистра)
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
