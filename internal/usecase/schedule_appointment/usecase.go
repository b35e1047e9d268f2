package schedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/conferencing"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ShowingService/internal/scheduling"
	"github.com/m04kA/SMC-ShowingService/pkg/tracing"
)

const tracerName = "schedule_appointment"

// UseCase use case для планирования встречи
type UseCase struct {
	settings     SettingsResolver
	appointments AppointmentReader
	conferencing ConferencingClient // nil, если интеграция выключена
	notifier     Notifier           // nil, если уведомления выключены
	attempts     []PersistenceAttempt
	metrics      MetricsRecorder
	cfg          Config
	tracer       trace.Tracer
	timeProvider TimeProvider
	newKey       func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsResolver,
	appointments AppointmentReader,
	conferencing ConferencingClient,
	notifier Notifier,
	attempts []PersistenceAttempt,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		settings:     settings,
		appointments: appointments,
		conferencing: conferencing,
		notifier:     notifier,
		attempts:     attempts,
		metrics:      metrics,
		cfg:          cfg,
		tracer:       tracing.Tracer(tracerName),
		timeProvider: &RealTimeProvider{},
		newKey:       uuid.NewString,
		logger:       logger,
	}
}

// Execute выполняет use case планирования встречи
// Критичны только нераспознанная дата и отсутствие свободного слота,
// сбои остальных шагов попадают в Response.Warnings
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := uc.tracer.Start(ctx, "ScheduleAppointment",
		trace.WithAttributes(attribute.Int64("owner.id", req.OwnerID)))
	defer span.End()

	uc.logger.Info("ScheduleAppointment: owner=%d, date=%s, time=%q, type=%s",
		req.OwnerID, req.Date, req.Time, req.Kind)

	// 1. Валидация и разбор даты/времени
	if err := validateRequest(req); err != nil {
		return nil, uc.fail(span, OutcomeInvalid, err)
	}

	desired, err := uc.parseInput(req)
	if err != nil {
		return nil, uc.fail(span, OutcomeInvalid, err)
	}

	now := uc.timeProvider.Now()
	resp := &Response{
		Kind:     req.Kind,
		Warnings: []Warning{},
	}

	if err := normalizeContact(req); err != nil {
		uc.warn(resp, StepContact, err)
	}

	// 2. Настройки календаря и занятые интервалы
	settings, busy := uc.resolveContext(ctx, req.OwnerID, now, resp)

	// 3. Поиск слота
	duration := effectiveDuration(req.DurationMinutes, settings)
	slot, adjusted, err := uc.computeSlot(ctx, desired, duration, settings, busy)
	if err != nil {
		return nil, uc.fail(span, OutcomeNoSlot, err)
	}

	resp.Date = slot.Start.Format(domain.DateFormat)
	resp.TimeLabel = scheduling.FormatTimeLabel(slot.Start)
	resp.Start = slot.Start
	resp.End = slot.End
	resp.DurationMinutes = duration
	resp.Adjusted = adjusted

	// 4. Напоминания и статус
	resp.Reminders = scheduling.ResolveReminders(req.Reminders, settings)
	resp.Status = domain.StatusScheduled
	if req.Status != nil {
		resp.Status = *req.Status
	}
	resp.Confirmed = settings.AutoConfirm

	// 5. Событие во внешнем календаре (опционально)
	uc.createExternalEvent(ctx, req, settings, resp)

	// 6. Уведомления
	details := appointmentDetails(req, resp)
	uc.notify(ctx, details, settings, resp)

	// 7. Сохранение
	if slotTaken := uc.persist(ctx, req, settings, resp); slotTaken {
		// Клиент уже получил подтверждение, сообщаем, что запись не создана
		uc.notifySlotTaken(ctx, details, resp)
	}

	outcome := OutcomeScheduled
	if resp.AppointmentID == nil {
		outcome = OutcomeUnpersisted
	}
	uc.metrics.SchedulingOutcome(outcome)
	span.SetAttributes(
		attribute.String("slot.start", resp.Start.Format(time.RFC3339)),
		attribute.Bool("slot.adjusted", resp.Adjusted),
		attribute.Int("warnings", len(resp.Warnings)),
	)

	uc.logger.Info("ScheduleAppointment: owner=%d, slot=%s-%s, outcome=%s, persisted_by=%q, warnings=%d",
		req.OwnerID, resp.Start.Format(time.RFC3339), resp.End.Format(time.RFC3339), outcome, resp.PersistedBy, len(resp.Warnings))

	return resp, nil
}

func (uc *UseCase) parseInput(req *Request) (time.Time, error) {
	day, err := scheduling.ParseDate(req.Date, uc.cfg.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidAppointmentTime, err)
	}
	return scheduling.ParseTimeLabel(req.Time).At(day, uc.cfg.Location), nil
}

// resolveContext загружает настройки и занятость владельца
// Сбой любого источника не прерывает планирование: используются значения по умолчанию и пустой календарь
func (uc *UseCase) resolveContext(ctx context.Context, ownerID int64, now time.Time, resp *Response) (domain.CalendarSettings, []domain.BusyInterval) {
	ctx, span := uc.tracer.Start(ctx, "ResolveContext")
	defer span.End()

	settingsCtx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Settings)
	settings, err := uc.settings.Resolve(settingsCtx, ownerID)
	cancel()
	if err != nil {
		settings = domain.DefaultCalendarSettings(ownerID)
		uc.warn(resp, StepResolveSettings, err)
	}

	if ownerID == 0 {
		return settings, []domain.BusyInterval{}
	}

	listCtx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Listing)
	defer cancel()

	existing, err := uc.appointments.ListByOwner(listCtx, domain.AppointmentFilter{OwnerID: ownerID})
	if err != nil {
		uc.warn(resp, StepListAppointments, err)
		existing = nil
	}

	busy := scheduling.BuildBusyIntervals(existing, settings, now, uc.cfg.Location)
	span.SetAttributes(attribute.Int("busy.count", len(busy)))

	return settings, busy
}

func (uc *UseCase) computeSlot(
	ctx context.Context,
	desired time.Time,
	duration int,
	settings domain.CalendarSettings,
	busy []domain.BusyInterval,
) (domain.Slot, bool, error) {
	_, span := uc.tracer.Start(ctx, "ComputeSlot")
	defer span.End()

	// Корректировка выключена владельцем - берем запрошенное время как есть
	if !settings.AdjustsRequestedTime() {
		span.SetAttributes(attribute.Bool("slot.bypass", true))
		return scheduling.RawSlot(desired, duration, uc.cfg.Location), false, nil
	}

	result, err := scheduling.FindSlot(desired, duration, settings, busy, uc.cfg.Location)
	uc.metrics.SlotSearch(result.Iterations)
	span.SetAttributes(attribute.Int("slot.iterations", result.Iterations))
	if err != nil {
		span.RecordError(err)
		return domain.Slot{}, false, fmt.Errorf("%w: %v", ErrNoAvailableSlot, err)
	}

	return result.Slot, result.Adjusted, nil
}

func (uc *UseCase) createExternalEvent(ctx context.Context, req *Request, settings domain.CalendarSettings, resp *Response) {
	if !settings.HasIntegration() || uc.conferencing == nil {
		return
	}
	if !uc.conferencing.Authenticated() {
		uc.logger.Info("ScheduleAppointment: integration %s is not authenticated, skipping external event", *settings.IntegrationType)
		return
	}

	ctx, span := uc.tracer.Start(ctx, "CreateExternalEvent")
	defer span.End()

	ctx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Conferencing)
	defer cancel()

	event, err := uc.conferencing.CreateEvent(ctx, conferencing.EventRequest{
		Summary:     fmt.Sprintf("%s with %s", req.Kind, req.ClientName),
		Description: eventDescription(req),
		Start:       resp.Start,
		End:         resp.End,
		Attendees:   attendees(req.ClientEmail),
	})
	if err != nil {
		span.RecordError(err)
		uc.warn(resp, StepExternalEvent, err)
		return
	}

	eventID := event.EventID
	resp.ExternalEventID = &eventID
	resp.ConferenceLink = event.MeetLink
}

func appointmentDetails(req *Request, resp *Response) notifier.AppointmentDetails {
	return notifier.AppointmentDetails{
		OwnerID:     req.OwnerID,
		Kind:        string(req.Kind),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Date:        resp.Date,
		TimeLabel:   resp.TimeLabel,
		Start:       resp.Start,
		End:         resp.End,
		Confirmed:   resp.Confirmed,
		Notes:       req.Notes,
	}
}

func attendees(email string) []string {
	if email == "" {
		return nil
	}
	return []string{email}
}

// notify отправляет подтверждение клиенту и уведомление администратору параллельно
func (uc *UseCase) notify(ctx context.Context, details notifier.AppointmentDetails, settings domain.CalendarSettings, resp *Response) {
	if uc.notifier == nil {
		return
	}

	ctx, span := uc.tracer.Start(ctx, "Notify")
	defer span.End()

	var (
		g                    errgroup.Group
		confirmErr, alertErr error
	)

	g.Go(func() error {
		notifyCtx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Notification)
		defer cancel()
		confirmErr = uc.notifier.SendConfirmation(notifyCtx, details, resp.ConferenceLink, settings.SMSRemindersEnabled)
		return nil
	})

	if settings.NewAppointmentAlertsEnabled {
		g.Go(func() error {
			notifyCtx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Notification)
			defer cancel()
			alertErr = uc.notifier.SendAdminAlert(notifyCtx, details, resp.ConferenceLink, details.OwnerID)
			return nil
		})
	}

	_ = g.Wait()

	if confirmErr != nil {
		span.RecordError(confirmErr)
		uc.warn(resp, StepConfirmation, confirmErr)
	}
	if alertErr != nil {
		span.RecordError(alertErr)
		uc.warn(resp, StepAdminAlert, alertErr)
	}
}

// notifySlotTaken отправляет клиенту отмену подтверждения, если слот заняли до сохранения
func (uc *UseCase) notifySlotTaken(ctx context.Context, details notifier.AppointmentDetails, resp *Response) {
	if uc.notifier == nil {
		return
	}

	ctx, span := uc.tracer.Start(ctx, "NotifySlotTaken")
	defer span.End()

	ctx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Notification)
	defer cancel()

	if err := uc.notifier.SendSlotTaken(ctx, details); err != nil {
		span.RecordError(err)
		uc.warn(resp, StepSlotTakenNotice, err)
	}
}

// persist перебирает стратегии сохранения до первой успешной
// ErrSlotTaken останавливает перебор: слот занят и резервная запись создала бы двойное бронирование.
// Возвращает true, если запись отклонена из-за занятого слота
func (uc *UseCase) persist(ctx context.Context, req *Request, settings domain.CalendarSettings, resp *Response) bool {
	ctx, span := uc.tracer.Start(ctx, "Persist")
	defer span.End()

	start, end := resp.Start, resp.End
	persistReq := PersistRequest{
		Appointment: &domain.Appointment{
			OwnerID:         req.OwnerID,
			Kind:            req.Kind,
			Status:          resp.Status,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			LeadID:          req.LeadID,
			PropertyID:      req.PropertyID,
			Date:            resp.Date,
			TimeLabel:       resp.TimeLabel,
			Start:           &start,
			End:             &end,
			ConferenceLink:  resp.ConferenceLink,
			ExternalEventID: resp.ExternalEventID,
			Reminders:       resp.Reminders,
			Notes:           req.Notes,
		},
		Buffer:         time.Duration(settings.BufferMinutes) * time.Minute,
		CheckOverlap:   settings.AdjustsRequestedTime(),
		IdempotencyKey: uc.newKey(),
	}

	attempted := false
	for _, attempt := range uc.attempts {
		name := attempt.Name()

		attemptCtx, cancel := withTimeout(ctx, uc.cfg.Timeouts.Persist)
		id, err := attempt.Persist(attemptCtx, persistReq)
		cancel()

		switch {
		case err == nil:
			uc.metrics.PersistenceAttempt(name, true)
			resp.AppointmentID = &id
			resp.PersistedBy = name
			span.SetAttributes(attribute.String("persist.strategy", name), attribute.Int64("appointment.id", id))
			return false
		case errors.Is(err, ErrAttemptSkipped):
			uc.logger.Info("ScheduleAppointment: persistence attempt %s skipped: %v", name, err)
		case errors.Is(err, ErrSlotTaken):
			uc.metrics.PersistenceAttempt(name, false)
			span.RecordError(err)
			uc.warn(resp, StepPersist, fmt.Errorf("%s: %w", name, err))
			return true
		default:
			attempted = true
			uc.metrics.PersistenceAttempt(name, false)
			span.RecordError(err)
			uc.warn(resp, StepPersist, fmt.Errorf("%s: %w", name, err))
		}
	}

	if !attempted {
		uc.warn(resp, StepPersist, errors.New("no persistence strategy applies to this appointment"))
	}

	return false
}

func (uc *UseCase) warn(resp *Response, step string, err error) {
	uc.logger.Warn("ScheduleAppointment: step=%s degraded: %v", step, err)
	uc.metrics.SideEffectWarning(step)
	resp.Warnings = append(resp.Warnings, Warning{Step: step, Message: err.Error()})
}

func (uc *UseCase) fail(span trace.Span, outcome string, err error) error {
	uc.logger.Warn("ScheduleAppointment: %s: %v", outcome, err)
	uc.metrics.SchedulingOutcome(outcome)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	return err
}

func eventDescription(req *Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s <%s>", strings.TrimSpace(req.ClientName), req.ClientEmail)
	if req.ClientPhone != nil && *req.ClientPhone != "" {
		fmt.Fprintf(&b, "\nPhone: %s", *req.ClientPhone)
	}
	if req.Notes != nil && *req.Notes != "" {
		fmt.Fprintf(&b, "\n\n%s", *req.Notes)
	}
	return b.String()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
