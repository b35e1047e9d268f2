package get_calendar_settings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShowingService/internal/api/handlers"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца календаря"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{ownerId}/settings
// Если владелец ничего не сохранял, возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil || ownerID < 0 {
		h.logger.Warn("GET /calendars/{id}/settings - Invalid owner ID: %q", ownerIDStr)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	result, err := h.service.Get(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /calendars/{id}/settings - Failed to get settings: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars/{id}/settings - Settings retrieved successfully: owner_id=%d, is_default=%t",
		ownerID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
