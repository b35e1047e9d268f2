package schedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/backend"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/conferencing"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/notifier"
)

// SettingsResolver источник итоговых настроек календаря
// При сбое хранилища возвращает настройки по умолчанию вместе с ошибкой
type SettingsResolver interface {
	Resolve(ctx context.Context, ownerID int64) (domain.CalendarSettings, error)
}

// AppointmentReader чтение существующих встреч владельца
type AppointmentReader interface {
	ListByOwner(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// AppointmentWriter запись встречи напрямую в хранилище
type AppointmentWriter interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	LockOwner(ctx context.Context, ownerID int64) error
	HasOverlap(ctx context.Context, ownerID int64, start, end time.Time, buffer time.Duration) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConferencingClient интерфейс клиента провайдера видеовстреч
type ConferencingClient interface {
	Authenticated() bool
	CreateEvent(ctx context.Context, event conferencing.EventRequest) (*conferencing.Event, error)
}

// BackendClient интерфейс резервной записи через backend API
type BackendClient interface {
	CreateAppointment(ctx context.Context, payload backend.AppointmentPayload, idempotencyKey string) (*backend.CreatedAppointment, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	SendConfirmation(ctx context.Context, details notifier.AppointmentDetails, link *string, smsEnabled bool) error
	SendAdminAlert(ctx context.Context, details notifier.AppointmentDetails, link *string, ownerID int64) error
	SendSlotTaken(ctx context.Context, details notifier.AppointmentDetails) error
}

// PersistenceAttempt одна стратегия сохранения встречи
// Стратегии перебираются по порядку до первой успешной
type PersistenceAttempt interface {
	Name() string
	Persist(ctx context.Context, req PersistRequest) (int64, error)
}

// MetricsRecorder доменные метрики планирования
type MetricsRecorder interface {
	SchedulingOutcome(outcome string)
	SideEffectWarning(step string)
	PersistenceAttempt(strategy string, ok bool)
	SlotSearch(iterations int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) SchedulingOutcome(string) {}
func (noopMetrics) SideEffectWarning(string) {}
func (noopMetrics) PersistenceAttempt(string, bool) {}
func (noopMetrics) SlotSearch(int) {}
