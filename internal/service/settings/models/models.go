package models

import (
	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// Request модели

// WorkingHoursPatch частичное обновление рабочих часов
type WorkingHoursPatch struct {
	Start *string `json:"start,omitempty"` // HH:MM
	End   *string `json:"end,omitempty"`   // HH:MM
}

// UpdateSettingsRequest запрос на обновление настроек календаря
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID  int64 `json:"-"`
	OwnerID int64 `json:"-"`

	IntegrationType             *string            `json:"integrationType,omitempty"`
	AISchedulingEnabled         *bool              `json:"aiSchedulingEnabled,omitempty"`
	ConflictDetectionEnabled    *bool              `json:"conflictDetectionEnabled,omitempty"`
	WorkingHours                *WorkingHoursPatch `json:"workingHours,omitempty"`
	WorkingDays                 []string           `json:"workingDays,omitempty"` // nil = без изменений, [] = нет рабочих дней
	DefaultDurationMinutes      *int               `json:"defaultDuration,omitempty"`
	BufferMinutes               *int               `json:"bufferTime,omitempty"`
	EmailRemindersEnabled       *bool              `json:"emailReminders,omitempty"`
	SMSRemindersEnabled         *bool              `json:"smsReminders,omitempty"`
	NewAppointmentAlertsEnabled *bool              `json:"newAppointmentAlerts,omitempty"`
	AutoConfirm                 *bool              `json:"autoConfirm,omitempty"`
}

// Response модели

// WorkingHoursResponse рабочие часы
type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SettingsResponse итоговые настройки календаря
type SettingsResponse struct {
	OwnerID                     int64                `json:"ownerId"`
	IntegrationType             *string              `json:"integrationType"`
	AISchedulingEnabled         bool                 `json:"aiSchedulingEnabled"`
	ConflictDetectionEnabled    bool                 `json:"conflictDetectionEnabled"`
	WorkingHours                WorkingHoursResponse `json:"workingHours"`
	WorkingDays                 []string             `json:"workingDays"`
	DefaultDurationMinutes      int                  `json:"defaultDuration"`
	BufferMinutes               int                  `json:"bufferTime"`
	EmailRemindersEnabled       bool                 `json:"emailReminders"`
	SMSRemindersEnabled         bool                 `json:"smsReminders"`
	NewAppointmentAlertsEnabled bool                 `json:"newAppointmentAlerts"`
	AutoConfirm                 bool                 `json:"autoConfirm"`
	IsDefault                   bool                 `json:"isDefault"` // true, если настройки не сохранены и взяты по умолчанию
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s domain.CalendarSettings) *SettingsResponse {
	return &SettingsResponse{
		OwnerID:                  s.OwnerID,
		IntegrationType:          s.IntegrationType,
		AISchedulingEnabled:      s.AISchedulingEnabled,
		ConflictDetectionEnabled: s.ConflictDetectionEnabled,
		WorkingHours: WorkingHoursResponse{
			Start: s.WorkingHours.Start.String(),
			End:   s.WorkingHours.End.String(),
		},
		WorkingDays:                 domain.WeekdayNames(s.WorkingDays),
		DefaultDurationMinutes:      s.DefaultDurationMinutes,
		BufferMinutes:               s.BufferMinutes,
		EmailRemindersEnabled:       s.EmailRemindersEnabled,
		SMSRemindersEnabled:         s.SMSRemindersEnabled,
		NewAppointmentAlertsEnabled: s.NewAppointmentAlertsEnabled,
		AutoConfirm:                 s.AutoConfirm,
		IsDefault:                   !s.Stored,
	}
}
