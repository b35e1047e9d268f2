package schedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowingService/internal/integrations/backend"
)

// DirectStoreAttempt сохраняет встречу напрямую в БД под владельцем календаря
type DirectStoreAttempt struct {
	repo      AppointmentWriter
	txManager TransactionManager
}

// NewDirectStoreAttempt создает стратегию прямой записи
func NewDirectStoreAttempt(repo AppointmentWriter, txManager TransactionManager) *DirectStoreAttempt {
	return &DirectStoreAttempt{repo: repo, txManager: txManager}
}

// Name имя стратегии
func (a *DirectStoreAttempt) Name() string {
	return "direct_store"
}

// Persist записывает встречу в сериализуемой транзакции
// Календарь владельца блокируется advisory-блокировкой, затем пересечение проверяется повторно
func (a *DirectStoreAttempt) Persist(ctx context.Context, req PersistRequest) (int64, error) {
	appt := req.Appointment
	if appt.OwnerID == 0 {
		return 0, fmt.Errorf("%w: no owner", ErrAttemptSkipped)
	}

	var id int64

	err := a.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Сериализуем запись в календарь владельца
		if err := a.repo.LockOwner(txCtx, appt.OwnerID); err != nil {
			return err
		}

		// 2. Проверяем, что слот не заняли после чтения календаря
		if req.CheckOverlap && appt.Start != nil && appt.End != nil {
			taken, err := a.repo.HasOverlap(txCtx, appt.OwnerID, *appt.Start, *appt.End, req.Buffer)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotTaken
			}
		}

		// 3. Создаем встречу
		created, err := a.repo.Create(txCtx, appt)
		if err != nil {
			return err
		}

		id = created.ID
		return nil
	})

	if err != nil {
		return 0, err
	}
	return id, nil
}

// BackendAttempt резервная запись через backend API
type BackendAttempt struct {
	client BackendClient
}

// NewBackendAttempt создает стратегию записи через backend API; client может быть nil (стратегия пропускается)
func NewBackendAttempt(client BackendClient) *BackendAttempt {
	return &BackendAttempt{client: client}
}

// Name имя стратегии
func (a *BackendAttempt) Name() string {
	return "backend_endpoint"
}

// Persist отправляет встречу в backend с ключом идемпотентности запроса
func (a *BackendAttempt) Persist(ctx context.Context, req PersistRequest) (int64, error) {
	if a.client == nil {
		return 0, fmt.Errorf("%w: backend is not configured", ErrAttemptSkipped)
	}
	appt := req.Appointment
	if appt.Start == nil || appt.End == nil {
		return 0, fmt.Errorf("%w: appointment has no resolved slot", ErrInvalidInput)
	}

	payload := backend.AppointmentPayload{
		Kind:                  string(appt.Kind),
		Status:                string(appt.Status),
		ClientName:            appt.ClientName,
		ClientEmail:           appt.ClientEmail,
		ClientPhone:           appt.ClientPhone,
		LeadID:                appt.LeadID,
		PropertyID:            appt.PropertyID,
		Date:                  appt.Date,
		Time:                  appt.TimeLabel,
		Start:                 *appt.Start,
		End:                   *appt.End,
		ConferenceLink:        appt.ConferenceLink,
		ExternalEventID:       appt.ExternalEventID,
		AgentReminderEnabled:  appt.Reminders.AgentEnabled,
		AgentReminderMinutes:  appt.Reminders.AgentLeadMinutes,
		ClientReminderEnabled: appt.Reminders.ClientEnabled,
		ClientReminderMinutes: appt.Reminders.ClientLeadMinutes,
		Notes:                 appt.Notes,
	}
	if appt.OwnerID != 0 {
		ownerID := appt.OwnerID
		payload.OwnerID = &ownerID
	}

	created, err := a.client.CreateAppointment(ctx, payload, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			return 0, fmt.Errorf("%w: %v", ErrSlotTaken, err)
		}
		return 0, err
	}

	return created.ID, nil
}
