package schedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShowingService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowingService/internal/api/middleware"
	scheduleAppointment "github.com/m04kA/SMC-ShowingService/internal/usecase/schedule_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректная дата встречи"
	msgInvalidInput       = "некорректные данные встречи"
	msgNoAvailableSlot    = "не удалось найти свободное время в пределах года"
)

type Handler struct {
	useCase ScheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Запись доступна без авторизации: без X-User-ID встреча планируется по календарю по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Владелец календаря - авторизованный пользователь, иначе анонимная запись
	ownerID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleAppointment.ErrInvalidAppointmentTime):
			h.logger.Warn("POST /appointments - Invalid appointment time: owner_id=%d, date=%q", ownerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, scheduleAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduleAppointment.ErrNoAvailableSlot):
			h.logger.Warn("POST /appointments - No available slot: owner_id=%d, date=%q", ownerID, req.Date)
			handlers.RespondUnprocessable(w, msgNoAvailableSlot)

		default:
			h.logger.Error("POST /appointments - Failed to schedule appointment: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Слот рассчитан, но ни одна стратегия не подтвердила сохранение
	if result.AppointmentID == nil {
		h.logger.Warn("POST /appointments - Appointment scheduled without persistence: owner_id=%d, warnings=%d",
			ownerID, len(result.Warnings))
		handlers.RespondJSON(w, http.StatusAccepted, response)
		return
	}

	h.logger.Info("POST /appointments - Appointment scheduled successfully: appointment_id=%d, owner_id=%d, adjusted=%t",
		*result.AppointmentID, ownerID, result.Adjusted)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
