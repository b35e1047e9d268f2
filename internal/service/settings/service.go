package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	settingsCache "github.com/m04kA/SMC-ShowingService/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/SMC-ShowingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ShowingService/internal/service/settings/models"
	"github.com/m04kA/SMC-ShowingService/pkg/types"
)

const maxIntegrationTypeLength = 50

// Service сервис настроек календаря
type Service struct {
	settingsRepo SettingsRepository
	cache        SettingsCache // nil, если кеш выключен
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, cache SettingsCache, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Resolve возвращает итоговые настройки владельца: сохраненная (возможно частичная) запись поверх значений по умолчанию.
// Настройки возвращаются всегда; при сбое хранилища вместе с настройками по умолчанию возвращается ErrSettingsDegraded
func (s *Service) Resolve(ctx context.Context, ownerID int64) (domain.CalendarSettings, error) {
	// Анонимное бронирование - только значения по умолчанию
	if ownerID == 0 {
		return domain.DefaultCalendarSettings(0), nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return *cached, nil
		}
		if !errors.Is(err, settingsCache.ErrCacheMiss) {
			s.logger.Warn("Resolve: cache read failed for owner=%d: %v", ownerID, err)
		}
	}

	stored, err := s.settingsRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Resolve: failed to load settings for owner=%d, using defaults: %v", ownerID, err)
			return domain.DefaultCalendarSettings(ownerID), fmt.Errorf("%w: owner=%d: %v", ErrSettingsDegraded, ownerID, err)
		}
		stored = nil
	}

	settings := domain.MergeSettings(ownerID, stored)

	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			s.logger.Warn("Resolve: cache write failed for owner=%d: %v", ownerID, err)
		}
	}

	return settings, nil
}

// Get возвращает итоговые настройки календаря для API
// Публичный метод - доступен всем (нужен форме записи)
func (s *Service) Get(ctx context.Context, ownerID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for owner=%d", ownerID)

	settings, err := s.Resolve(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update частично обновляет настройки календаря
// Доступно только владельцу календаря
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for owner=%d by user=%d", req.OwnerID, req.UserID)

	// 1. Проверяем права доступа
	if req.UserID != req.OwnerID {
		s.logger.Warn("Update: user=%d is not the owner of calendar=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем текущую запись (или начинаем с пустой)
	stored, err := s.settingsRepo.GetByOwner(ctx, req.OwnerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for owner=%d: %v", req.OwnerID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		stored = &domain.StoredSettings{OwnerID: req.OwnerID}
	}

	// 3. Применяем изменения и валидируем результат
	if err := applyPatch(stored, req); err != nil {
		s.logger.Warn("Update: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, err
	}

	merged := domain.MergeSettings(req.OwnerID, stored)
	if !merged.WorkingHours.Start.IsBefore(merged.WorkingHours.End) {
		s.logger.Warn("Update: working hours start=%s is not before end=%s", merged.WorkingHours.Start, merged.WorkingHours.End)
		return nil, fmt.Errorf("%w: working hours start must be before end", ErrInvalidInput)
	}

	// 4. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, stored)
	if err != nil {
		s.logger.Error("Update: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Сбрасываем кеш, чтобы следующее бронирование увидело новые настройки
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.OwnerID); err != nil {
			s.logger.Warn("Update: cache invalidation failed for owner=%d: %v", req.OwnerID, err)
		}
	}

	s.logger.Info("Update: successfully updated settings for owner=%d", req.OwnerID)
	return models.FromDomainSettings(domain.MergeSettings(req.OwnerID, saved)), nil
}

// applyPatch переносит переданные поля запроса в сохраняемую запись
func applyPatch(stored *domain.StoredSettings, req *models.UpdateSettingsRequest) error {
	if req.IntegrationType != nil {
		integration := strings.TrimSpace(*req.IntegrationType)
		if len(integration) > maxIntegrationTypeLength {
			return fmt.Errorf("%w: integrationType is too long", ErrInvalidInput)
		}
		if integration == "" {
			stored.IntegrationType = nil
		} else {
			stored.IntegrationType = &integration
		}
	}

	if req.WorkingHours != nil {
		if req.WorkingHours.Start != nil {
			start, err := types.NewTimeStringFromString(*req.WorkingHours.Start)
			if err != nil {
				return fmt.Errorf("%w: workingHours.start: %v", ErrInvalidInput, err)
			}
			stored.WorkingHoursStart = &start
		}
		if req.WorkingHours.End != nil {
			end, err := types.NewTimeStringFromString(*req.WorkingHours.End)
			if err != nil {
				return fmt.Errorf("%w: workingHours.end: %v", ErrInvalidInput, err)
			}
			stored.WorkingHoursEnd = &end
		}
	}

	if req.WorkingDays != nil {
		days, err := parseWorkingDays(req.WorkingDays)
		if err != nil {
			return err
		}
		stored.WorkingDays = days
	}

	if req.DefaultDurationMinutes != nil {
		d := *req.DefaultDurationMinutes
		if d < domain.MinAppointmentMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: defaultDuration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinAppointmentMinutes, domain.MaxDurationMinutes)
		}
		stored.DefaultDurationMinutes = &d
	}

	if req.BufferMinutes != nil {
		b := *req.BufferMinutes
		if b < 0 || b > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: bufferTime must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
		}
		stored.BufferMinutes = &b
	}

	setBool(&stored.AISchedulingEnabled, req.AISchedulingEnabled)
	setBool(&stored.ConflictDetectionEnabled, req.ConflictDetectionEnabled)
	setBool(&stored.EmailRemindersEnabled, req.EmailRemindersEnabled)
	setBool(&stored.SMSRemindersEnabled, req.SMSRemindersEnabled)
	setBool(&stored.NewAppointmentAlertsEnabled, req.NewAppointmentAlertsEnabled)
	setBool(&stored.AutoConfirm, req.AutoConfirm)

	return nil
}

// parseWorkingDays разбирает названия дней, отбрасывая дубликаты
func parseWorkingDays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool, len(names))

	for _, name := range names {
		d, ok := domain.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown working day %q", ErrInvalidInput, name)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}

	return days, nil
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		b := *v
		*dst = &b
	}
}
