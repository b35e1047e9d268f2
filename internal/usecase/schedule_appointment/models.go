package schedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/scheduling"
)

// Шаги, на которых может возникнуть предупреждение
const (
	StepContact          = "contact"
	StepResolveSettings  = "resolve_settings"
	StepListAppointments = "list_appointments"
	StepExternalEvent    = "external_event"
	StepConfirmation     = "confirmation"
	StepAdminAlert       = "admin_alert"
	StepPersist          = "persist"
	StepSlotTakenNotice  = "slot_taken_notice"
)

// Итоги планирования для метрик
const (
	OutcomeScheduled   = "scheduled"
	OutcomeUnpersisted = "scheduled_unpersisted"
	OutcomeInvalid     = "invalid_input"
	OutcomeNoSlot      = "no_slot"
)

// Request модель запроса на планирование встречи
type Request struct {
	OwnerID int64 // ID владельца календаря, 0 - анонимная запись

	ClientName  string
	ClientEmail string
	ClientPhone *string

	Date string // "2024-01-15" или "01/15/2024"
	Time string // свободная метка: "2:00 PM", "morning", ...

	Kind       domain.AppointmentKind
	LeadID     *int64
	PropertyID *int64
	Notes      *string

	DurationMinutes int                       // 0 - длительность из настроек
	Status          *domain.AppointmentStatus // nil - Scheduled
	Reminders       scheduling.ReminderOverrides
}

// Warning некритичный сбой побочного шага
type Warning struct {
	Step    string
	Message string
}

// Response результат планирования
// AppointmentID == nil означает, что слот рассчитан, но сохранение не подтверждено
type Response struct {
	AppointmentID *int64
	PersistedBy   string // имя стратегии, которая сохранила встречу

	Date            string // "2024-01-15"
	TimeLabel       string // "2:00 PM"
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Adjusted        bool // слот отличается от запрошенного времени

	Kind            domain.AppointmentKind
	Status          domain.AppointmentStatus
	Confirmed       bool
	Reminders       domain.Reminders
	ConferenceLink  *string
	ExternalEventID *string

	Warnings []Warning
}

// PersistRequest данные для стратегии сохранения
type PersistRequest struct {
	Appointment    *domain.Appointment
	Buffer         time.Duration
	CheckOverlap   bool   // false, если владелец отключил корректировку времени
	IdempotencyKey string // один на весь запрос
}

// Config параметры use case
type Config struct {
	Location *time.Location
	Timeouts Timeouts
}

// Timeouts ограничения времени на вызовы внешних зависимостей, 0 - без ограничения
type Timeouts struct {
	Settings     time.Duration
	Listing      time.Duration
	Conferencing time.Duration
	Notification time.Duration
	Persist      time.Duration
}
