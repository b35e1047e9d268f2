package settings

import (
	"context"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек календаря
type SettingsRepository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.StoredSettings, error)
	Upsert(ctx context.Context, stored *domain.StoredSettings) (*domain.StoredSettings, error)
}

// SettingsCache интерфейс кеша итоговых настроек
type SettingsCache interface {
	Get(ctx context.Context, ownerID int64) (*domain.CalendarSettings, error)
	Set(ctx context.Context, settings domain.CalendarSettings) error
	Invalidate(ctx context.Context, ownerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
