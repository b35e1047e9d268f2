package get_owner_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func (m *mockService) ListByOwner(ctx context.Context, req *models.ListByOwnerRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AppointmentListResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, ownerID string, userID int64, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendars/"+ownerID+"/appointments?"+rawQuery, nil)
	req = mux.SetURLVars(req, map[string]string{"ownerId": ownerID})
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_EmptyListIsArray(t *testing.T) {
	svc := &mockService{}
	svc.On("ListByOwner", mock.Anything, mock.MatchedBy(func(req *models.ListByOwnerRequest) bool {
		return req.OwnerID == 7 && req.UserID == 7 &&
			req.Status != nil && *req.Status == "scheduled" &&
			req.From != nil && req.From.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) &&
			req.To == nil
	})).Return(models.FromDomainAppointmentList(nil), nil)

	rec := serve(NewHandler(svc, logger.Discard()), "7", 7, "status=scheduled&from=2024-01-15")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("ListByOwner", mock.Anything, mock.MatchedBy(func(req *models.ListByOwnerRequest) bool {
		return req.OwnerID == 8
	})).Return(nil, appointments.ErrAccessDenied)
	svc.On("ListByOwner", mock.Anything, mock.MatchedBy(func(req *models.ListByOwnerRequest) bool {
		return req.OwnerID == 7
	})).Return(nil, appointments.ErrInvalidInput)
	h := NewHandler(svc, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, serve(h, "x", 7, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "7", 0, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", 7, "from=yesterday").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, "8", 7, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", 7, "status=unknown").Code)
}

func TestToServiceRequest_ParsesRFC3339(t *testing.T) {
	req, err := ToServiceRequest(7, 7, "", "", "2024-01-20T10:00:00Z")
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.From)
	require.NotNil(t, req.To)
	assert.Equal(t, time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), *req.To)
}
