package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ShowingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ShowingService/internal/service/appointments/models"
)

// Service сервис для работы с сохраненными встречами
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
// Встречу видит только владелец календаря
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.OwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// ListByOwner получает встречи календаря владельца
// Опционально фильтрует по статусу и периоду
func (s *Service) ListByOwner(ctx context.Context, req *models.ListByOwnerRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByOwner: fetching appointments for owner=%d by user=%d, status=%v", req.OwnerID, req.UserID, req.Status)

	if req.UserID != req.OwnerID {
		s.logger.Warn("ListByOwner: user=%d is not the owner of calendar=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByOwner: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByOwner(ctx, filter)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByOwner: successfully fetched %d appointments for owner=%d", len(appointments), req.OwnerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Complete отмечает встречу как состоявшуюся
func (s *Service) Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Complete", id, userID, domain.StatusCompleted)
}

// Cancel отменяет встречу
// Отмененная встреча перестает занимать время в календаре
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Cancel", id, userID, domain.StatusCancelled)
}

// transition меняет статус встречи внутри транзакции (строка блокируется через FOR UPDATE)
func (s *Service) transition(ctx context.Context, op string, id, userID int64, next domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	s.logger.Info("%s: updating appointment id=%d to status=%s by user=%d", op, id, next, userID)

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Получаем встречу
		appt, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		// 2. Проверяем права доступа
		if appt.OwnerID != userID {
			return ErrAccessDenied
		}

		// 3. Проверяем допустимость перехода
		if !appt.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
		}

		// 4. Обновляем статус
		if err := s.appointmentRepo.UpdateStatus(ctx, id, next); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		appt.Status = next
		result = appt
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("%s: appointment id=%d rejected for user=%d: %v", op, id, userID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("%s: appointment id=%d: %v", op, id, err)
			return nil, err
		default:
			s.logger.Error("%s: transaction error for appointment id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: successfully updated appointment id=%d to status=%s", op, id, next)
	return models.FromDomainAppointment(result), nil
}
