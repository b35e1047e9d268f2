package resolve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// SettingsResolver источник итоговых настроек календаря
type SettingsResolver interface {
	Resolve(ctx context.Context, ownerID int64) (domain.CalendarSettings, error)
}

// AppointmentReader чтение существующих встреч владельца
type AppointmentReader interface {
	ListByOwner(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
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
