package schedule_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowingService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowingService/internal/domain"
	scheduleAppointment "github.com/m04kA/SMC-ShowingService/internal/usecase/schedule_appointment"
	"github.com/m04kA/SMC-ShowingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *scheduleAppointment.Request) (*scheduleAppointment.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*scheduleAppointment.Response)
	return resp, args.Error(1)
}

const body = `{"clientName":"Jane","clientEmail":"jane@example.com","date":"2024-01-15","time":"2:00 PM","duration":30}`

func scheduled(id *int64) *scheduleAppointment.Response {
	start := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	return &scheduleAppointment.Response{
		AppointmentID:   id,
		Date:            "2024-01-15",
		TimeLabel:       "2:00 PM",
		Start:           start,
		End:             start.Add(30 * time.Minute),
		DurationMinutes: 30,
		Kind:            domain.KindShowing,
		Status:          domain.StatusScheduled,
	}
}

func serve(h *Handler, userID int64, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	id := int64(11)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *scheduleAppointment.Request) bool {
		return r.OwnerID == 7 && r.Kind == domain.KindShowing && r.DurationMinutes == 30 && r.Time == "2:00 PM"
	})).Return(scheduled(&id), nil)

	rec := serve(NewHandler(uc, logger.Discard()), 7, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ScheduleAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.ID)
	assert.Equal(t, int64(11), *resp.ID)
	assert.True(t, resp.Persisted)
	assert.Equal(t, "2024-01-15T14:00:00Z", resp.Start)
	assert.Equal(t, "2:00 PM", resp.Time)
	assert.NotNil(t, resp.Warnings)
	uc.AssertExpectations(t)
}

func TestHandler_AcceptedWithoutPersistence(t *testing.T) {
	uc := &mockUseCase{}
	result := scheduled(nil)
	result.Warnings = []scheduleAppointment.Warning{{Step: scheduleAppointment.StepPersist, Message: "backend down"}}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *scheduleAppointment.Request) bool {
		return r.OwnerID == 0
	})).Return(result, nil)

	rec := serve(NewHandler(uc, logger.Discard()), 0, body)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp ScheduleAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.ID)
	assert.False(t, resp.Persisted)
	assert.Equal(t, []WarningResponse{{Step: "persist", Message: "backend down"}}, resp.Warnings)
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid time", err: scheduleAppointment.ErrInvalidAppointmentTime, status: http.StatusBadRequest},
		{name: "invalid input", err: scheduleAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "no slot", err: scheduleAppointment.ErrNoAvailableSlot, status: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := serve(NewHandler(uc, logger.Discard()), 7, body)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, serve(h, 7, "{").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, 7, `{"unknown":1}`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestScheduleAppointmentRequest_ToUseCaseRequest(t *testing.T) {
	agentOff := false
	status := "Completed"
	req := ScheduleAppointmentRequest{
		Type:      "Open House",
		Status:    &status,
		Reminders: &RemindersRequest{AgentEnabled: &agentOff},
	}

	got := req.ToUseCaseRequest(3)
	assert.Equal(t, int64(3), got.OwnerID)
	assert.Equal(t, domain.KindOpenHouse, got.Kind)
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusCompleted, *got.Status)
	require.NotNil(t, got.Reminders.AgentEnabled)
	assert.False(t, *got.Reminders.AgentEnabled)
	assert.Nil(t, got.Reminders.ClientEnabled)
}
