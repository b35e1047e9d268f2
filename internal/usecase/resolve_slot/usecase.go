package resolve_slot

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/scheduling"
	"github.com/m04kA/SMC-ShowingService/pkg/tracing"
)

// Config параметры use case
type Config struct {
	Location        *time.Location
	SettingsTimeout time.Duration
	ListingTimeout  time.Duration
}

// UseCase use case предпросмотра слота: расчет без записи и уведомлений
type UseCase struct {
	settings     SettingsResolver
	appointments AppointmentReader
	cfg          Config
	tracer       trace.Tracer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settings SettingsResolver, appointments AppointmentReader, cfg Config, logger Logger) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		settings:     settings,
		appointments: appointments,
		cfg:          cfg,
		tracer:       tracing.Tracer("resolve_slot"),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute рассчитывает ближайший свободный слот и, по запросу, следующие за ним
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "ResolveSlot", trace.WithAttributes(attribute.Int64("owner.id", req.OwnerID)))
	defer span.End()

	uc.logger.Info("ResolveSlot: owner=%d, date=%s, time=%q, duration=%d, count=%d",
		req.OwnerID, req.Date, req.Time, req.DurationMinutes, req.Count)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем дату и время
	day, err := scheduling.ParseDate(req.Date, uc.cfg.Location)
	if err != nil {
		uc.logger.Warn("ResolveSlot: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidAppointmentTime, err)
	}
	desired := scheduling.ParseTimeLabel(req.Time).At(day, uc.cfg.Location)

	resp := &Response{
		Requested: desired,
		Slots:     []Slot{},
		Warnings:  []Warning{},
	}

	// 3. Настройки календаря (при сбое - значения по умолчанию)
	settingsCtx, cancel := withTimeout(ctx, uc.cfg.SettingsTimeout)
	settings, err := uc.settings.Resolve(settingsCtx, req.OwnerID)
	cancel()
	if err != nil {
		uc.logger.Warn("ResolveSlot: settings degraded for owner=%d: %v", req.OwnerID, err)
		settings = domain.DefaultCalendarSettings(req.OwnerID)
		resp.Warnings = append(resp.Warnings, Warning{Step: "resolve_settings", Message: err.Error()})
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = max(settings.DefaultDurationMinutes, domain.MinAppointmentMinutes)
	}
	resp.DurationMinutes = duration

	// 4. Корректировка выключена - возвращаем запрошенное время как есть
	if !settings.AdjustsRequestedTime() {
		resp.Bypassed = true
		resp.Slots = append(resp.Slots, toSlot(scheduling.RawSlot(desired, duration, uc.cfg.Location)))
		return resp, nil
	}

	// 5. Занятые интервалы (при сбое - пустой календарь)
	busy := uc.loadBusy(ctx, req.OwnerID, settings, resp)

	// 6. Подбираем слоты: каждый найденный слот считается занятым для следующего поиска
	count := max(req.Count, 1)
	from := desired
	for len(resp.Slots) < count {
		result, err := scheduling.FindSlot(from, duration, settings, busy, uc.cfg.Location)
		if err != nil {
			if len(resp.Slots) > 0 {
				break
			}
			uc.logger.Warn("ResolveSlot: no slot for owner=%d after %d iterations", req.OwnerID, result.Iterations)
			return nil, fmt.Errorf("%w: %v", ErrNoAvailableSlot, err)
		}

		if len(resp.Slots) == 0 {
			resp.Adjusted = result.Adjusted
		}
		resp.Slots = append(resp.Slots, toSlot(result.Slot))

		busy = append(busy, domain.BusyInterval{Start: result.Slot.Start, End: result.Slot.End})
		slices.SortStableFunc(busy, func(a, b domain.BusyInterval) int {
			return a.Start.Compare(b.Start)
		})
		from = result.Slot.Start
	}

	span.SetAttributes(attribute.Int("slots", len(resp.Slots)))
	uc.logger.Info("ResolveSlot: owner=%d, first slot=%s, found=%d", req.OwnerID, resp.Slots[0].Start.Format(time.RFC3339), len(resp.Slots))

	return resp, nil
}

func (uc *UseCase) loadBusy(ctx context.Context, ownerID int64, settings domain.CalendarSettings, resp *Response) []domain.BusyInterval {
	if ownerID == 0 {
		return []domain.BusyInterval{}
	}

	listCtx, cancel := withTimeout(ctx, uc.cfg.ListingTimeout)
	defer cancel()

	existing, err := uc.appointments.ListByOwner(listCtx, domain.AppointmentFilter{OwnerID: ownerID})
	if err != nil {
		uc.logger.Warn("ResolveSlot: listing degraded for owner=%d: %v", ownerID, err)
		resp.Warnings = append(resp.Warnings, Warning{Step: "list_appointments", Message: err.Error()})
		existing = nil
	}

	return scheduling.BuildBusyIntervals(existing, settings, uc.timeProvider.Now(), uc.cfg.Location)
}

func toSlot(s domain.Slot) Slot {
	return Slot{
		Date:      s.Start.Format(domain.DateFormat),
		TimeLabel: scheduling.FormatTimeLabel(s.Start),
		Start:     s.Start,
		End:       s.End,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
