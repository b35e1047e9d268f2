package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowingService/pkg/psqlbuilder"
)

const table = "calendar_settings"

// Repository репозиторий для работы с настройками календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOwner получает сохраненные настройки владельца
// Любая колонка может быть NULL: такие поля остаются nil и заполняются значениями по умолчанию выше
func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.StoredSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"integration_type",
		"ai_scheduling_enabled",
		"conflict_detection_enabled",
		"working_hours_start",
		"working_hours_end",
		"working_days",
		"default_duration_minutes",
		"buffer_minutes",
		"email_reminders_enabled",
		"sms_reminders_enabled",
		"new_appointment_alerts_enabled",
		"auto_confirm",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var (
		stored               domain.StoredSettings
		days                 pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stored.OwnerID,
		&stored.IntegrationType,
		&stored.AISchedulingEnabled,
		&stored.ConflictDetectionEnabled,
		&stored.WorkingHoursStart,
		&stored.WorkingHoursEnd,
		&days,
		&stored.DefaultDurationMinutes,
		&stored.BufferMinutes,
		&stored.EmailRemindersEnabled,
		&stored.SMSRemindersEnabled,
		&stored.NewAppointmentAlertsEnabled,
		&stored.AutoConfirm,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - scan settings: %v", ErrScanRow, err)
	}

	stored.WorkingDays, err = parseWorkingDays(days)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - owner %d: %v", ErrScanRow, ownerID, err)
	}

	stored.CreatedAt = createdAt.Time
	stored.UpdatedAt = updatedAt.Time

	return &stored, nil
}

// Upsert создает или полностью перезаписывает настройки владельца
func (r *Repository) Upsert(ctx context.Context, stored *domain.StoredSettings) (*domain.StoredSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var days interface{}
	if stored.WorkingDays != nil {
		days = pq.Array(domain.WeekdayNames(stored.WorkingDays))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"owner_id",
			"integration_type",
			"ai_scheduling_enabled",
			"conflict_detection_enabled",
			"working_hours_start",
			"working_hours_end",
			"working_days",
			"default_duration_minutes",
			"buffer_minutes",
			"email_reminders_enabled",
			"sms_reminders_enabled",
			"new_appointment_alerts_enabled",
			"auto_confirm",
		).
		Values(
			stored.OwnerID,
			stored.IntegrationType,
			stored.AISchedulingEnabled,
			stored.ConflictDetectionEnabled,
			stored.WorkingHoursStart,
			stored.WorkingHoursEnd,
			days,
			stored.DefaultDurationMinutes,
			stored.BufferMinutes,
			stored.EmailRemindersEnabled,
			stored.SMSRemindersEnabled,
			stored.NewAppointmentAlertsEnabled,
			stored.AutoConfirm,
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			integration_type = EXCLUDED.integration_type,
			ai_scheduling_enabled = EXCLUDED.ai_scheduling_enabled,
			conflict_detection_enabled = EXCLUDED.conflict_detection_enabled,
			working_hours_start = EXCLUDED.working_hours_start,
			working_hours_end = EXCLUDED.working_hours_end,
			working_days = EXCLUDED.working_days,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			email_reminders_enabled = EXCLUDED.email_reminders_enabled,
			sms_reminders_enabled = EXCLUDED.sms_reminders_enabled,
			new_appointment_alerts_enabled = EXCLUDED.new_appointment_alerts_enabled,
			auto_confirm = EXCLUDED.auto_confirm,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	stored.CreatedAt = createdAt.Time
	stored.UpdatedAt = updatedAt.Time

	return stored, nil
}

// parseWorkingDays переводит названия дней из БД в time.Weekday
// NULL в колонке означает "не задано" и дает nil
func parseWorkingDays(names pq.StringArray) ([]time.Weekday, error) {
	if names == nil {
		return nil, nil
	}

	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		d, ok := domain.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWorkingDay, strings.TrimSpace(name))
		}
		days = append(days, d)
	}
	return days, nil
}
