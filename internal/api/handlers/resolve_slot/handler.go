package resolve_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShowingService/internal/api/handlers"
	resolveSlot "github.com/m04kA/SMC-ShowingService/internal/usecase/resolve_slot"
)

const (
	msgInvalidOwnerID  = "некорректный ID владельца календаря"
	msgInvalidDuration = "некорректная длительность встречи"
	msgInvalidCount    = "некорректное количество слотов"
	msgInvalidTime     = "некорректная дата встречи"
	msgInvalidInput    = "некорректные параметры запроса"
	msgNoAvailableSlot = "не удалось найти свободное время в пределах года"
)

type Handler struct {
	useCase ResolveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ResolveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{ownerId}/slot?date=2024-01-15&time=2:00 PM&durationMinutes=30&count=3
// Публичный endpoint - форма записи показывает ближайшее свободное время до отправки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(mux.Vars(r)["ownerId"], 10, 64)
	if err != nil || ownerID < 0 {
		h.logger.Warn("GET /calendars/{id}/slot - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	query := r.URL.Query()
	req := &resolveSlot.Request{
		OwnerID: ownerID,
		Date:    query.Get("date"),
		Time:    query.Get("time"),
	}

	if raw := query.Get("durationMinutes"); raw != "" {
		req.DurationMinutes, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /calendars/{id}/slot - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	if raw := query.Get("count"); raw != "" {
		req.Count, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /calendars/{id}/slot - Invalid count: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, resolveSlot.ErrInvalidAppointmentTime):
			h.logger.Warn("GET /calendars/{id}/slot - Invalid date: owner_id=%d, date=%q", ownerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, resolveSlot.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/slot - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, resolveSlot.ErrNoAvailableSlot):
			h.logger.Warn("GET /calendars/{id}/slot - No available slot: owner_id=%d, date=%q", ownerID, req.Date)
			handlers.RespondUnprocessable(w, msgNoAvailableSlot)

		default:
			h.logger.Error("GET /calendars/{id}/slot - Failed to resolve slot: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/slot - Resolved %d slot(s): owner_id=%d, adjusted=%t",
		len(result.Slots), ownerID, result.Adjusted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(ownerID, result))
}
