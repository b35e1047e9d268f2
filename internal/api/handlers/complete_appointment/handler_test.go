package complete_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowingService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowingService/internal/service/appointments"
	"github.com/m04kA/SMC-ShowingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-ShowingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Complete(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, userID)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, id string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/complete", nil)
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("Complete", mock.Anything, int64(4), int64(7)).
		Return(&models.AppointmentResponse{ID: 4, OwnerID: 7, Status: "Completed"}, nil)

	rec := serve(NewHandler(svc, logger.Discard()), "4", 7)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Completed", resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("Complete", mock.Anything, int64(1), int64(7)).Return(nil, appointments.ErrAppointmentNotFound)
	svc.On("Complete", mock.Anything, int64(2), int64(7)).Return(nil, appointments.ErrAccessDenied)
	svc.On("Complete", mock.Anything, int64(3), int64(7)).
		Return(nil, fmt.Errorf("%w: Completed -> Completed", appointments.ErrInvalidTransition))
	svc.On("Complete", mock.Anything, int64(5), int64(7)).Return(nil, errors.New("boom"))
	h := NewHandler(svc, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, serve(h, "x", 7).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "1", 0).Code)
	assert.Equal(t, http.StatusNotFound, serve(h, "1", 7).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, "2", 7).Code)
	assert.Equal(t, http.StatusConflict, serve(h, "3", 7).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, "5", 7).Code)
}
