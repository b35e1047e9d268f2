package schedule_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/conferencing"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ShowingService/pkg/logger"
	"github.com/m04kA/SMC-ShowingService/pkg/ptr"
)

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Resolve(ctx context.Context, ownerID int64) (domain.CalendarSettings, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.CalendarSettings), args.Error(1)
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) ListByOwner(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

type mockConferencing struct {
	mock.Mock
}

func (m *mockConferencing) Authenticated() bool {
	return m.Called().Bool(0)
}

func (m *mockConferencing) CreateEvent(ctx context.Context, event conferencing.EventRequest) (*conferencing.Event, error) {
	args := m.Called(ctx, event)
	e, _ := args.Get(0).(*conferencing.Event)
	return e, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, details notifier.AppointmentDetails, link *string, smsEnabled bool) error {
	return m.Called(ctx, details, link, smsEnabled).Error(0)
}

func (m *mockNotifier) SendAdminAlert(ctx context.Context, details notifier.AppointmentDetails, link *string, ownerID int64) error {
	return m.Called(ctx, details, link, ownerID).Error(0)
}

func (m *mockNotifier) SendSlotTaken(ctx context.Context, details notifier.AppointmentDetails) error {
	return m.Called(ctx, details).Error(0)
}

type fakeAttempt struct {
	name  string
	id    int64
	err   error
	calls []PersistRequest
}

func (f *fakeAttempt) Name() string {
	return f.name
}

func (f *fakeAttempt) Persist(_ context.Context, req PersistRequest) (int64, error) {
	f.calls = append(f.calls, req)
	return f.id, f.err
}

type fakeMetrics struct {
	outcomes   []string
	warnings   []string
	attempts   map[string]bool
	iterations []int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{attempts: map[string]bool{}}
}

func (f *fakeMetrics) SchedulingOutcome(outcome string) { f.outcomes = append(f.outcomes, outcome) }
func (f *fakeMetrics) SideEffectWarning(step string) { f.warnings = append(f.warnings, step) }
func (f *fakeMetrics) PersistenceAttempt(s string, ok bool) { f.attempts[s] = ok }
func (f *fakeMetrics) SlotSearch(iterations int) { f.iterations = append(f.iterations, iterations) }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// Воскресенье перед тестовым понедельником 2024-01-15
var testNow = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func newTestUseCase(
	settings SettingsResolver,
	reader AppointmentReader,
	conf ConferencingClient,
	notif Notifier,
	attempts ...PersistenceAttempt,
) (*UseCase, *fakeMetrics) {
	m := newFakeMetrics()
	uc := NewUseCase(settings, reader, conf, notif, attempts, m, Config{Location: time.UTC}, logger.Discard())
	uc.timeProvider = fixedTime{now: testNow}
	uc.newKey = func() string { return "idem-key" }
	return uc, m
}

func baseRequest(owner int64) *Request {
	return &Request{
		OwnerID:     owner,
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		ClientPhone: ptr.Ptr("+15550100"),
		Date:        "2024-01-15",
		Time:        "2:15 PM",
		Kind:        domain.KindShowing,
	}
}

func busyAppointment(startHour, endHour int) *domain.Appointment {
	start := time.Date(2024, 1, 15, startHour, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, endHour, 0, 0, 0, time.UTC)
	return &domain.Appointment{ID: 1, OwnerID: 7, Status: domain.StatusScheduled, Start: &start, End: &end}
}

func TestExecute_PushesPastConflictAndPersists(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(domain.DefaultCalendarSettings(7), nil)

	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, domain.AppointmentFilter{OwnerID: 7}).
		Return([]*domain.Appointment{busyAppointment(14, 15)}, nil)

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.Anything, (*string)(nil), true).Return(nil)
	notif.On("SendAdminAlert", mock.Anything, mock.Anything, (*string)(nil), int64(7)).Return(nil)

	direct := &fakeAttempt{name: "direct_store", id: 42}
	backend := &fakeAttempt{name: "backend_endpoint", id: 99}

	uc, m := newTestUseCase(settings, reader, nil, notif, direct, backend)

	req := baseRequest(7)
	req.DurationMinutes = 30

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 15, 15, 15, 0, 0, time.UTC), resp.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 15, 45, 0, 0, time.UTC), resp.End)
	assert.Equal(t, "2024-01-15", resp.Date)
	assert.Equal(t, "3:15 PM", resp.TimeLabel)
	assert.True(t, resp.Adjusted)
	assert.Equal(t, domain.StatusScheduled, resp.Status)
	assert.False(t, resp.Confirmed)
	assert.Empty(t, resp.Warnings)

	require.NotNil(t, resp.AppointmentID)
	assert.Equal(t, int64(42), *resp.AppointmentID)
	assert.Equal(t, "direct_store", resp.PersistedBy)
	assert.Empty(t, backend.calls)

	require.Len(t, direct.calls, 1)
	persisted := direct.calls[0]
	assert.Equal(t, 15*time.Minute, persisted.Buffer)
	assert.True(t, persisted.CheckOverlap)
	assert.Equal(t, "idem-key", persisted.IdempotencyKey)
	assert.Equal(t, "3:15 PM", persisted.Appointment.TimeLabel)
	assert.Equal(t, domain.Reminders{AgentEnabled: true, AgentLeadMinutes: 30, ClientEnabled: true, ClientLeadMinutes: 60},
		persisted.Appointment.Reminders)

	assert.Equal(t, []string{OutcomeScheduled}, m.outcomes)
	assert.True(t, m.attempts["direct_store"])
	notif.AssertExpectations(t)
}

func TestExecute_AnonymousFallsBackToBackend(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(0)).Return(domain.DefaultCalendarSettings(0), nil)
	reader := &mockReader{}

	direct := &fakeAttempt{name: "direct_store", err: ErrAttemptSkipped}
	backend := &fakeAttempt{name: "backend_endpoint", id: 99}

	uc, m := newTestUseCase(settings, reader, nil, nil, direct, backend)

	req := baseRequest(0)
	req.Time = "10:00 AM"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), resp.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), resp.End)
	assert.False(t, resp.Adjusted)
	assert.Equal(t, int64(99), *resp.AppointmentID)
	assert.Equal(t, "backend_endpoint", resp.PersistedBy)
	assert.Empty(t, resp.Warnings)

	reader.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	_, recorded := m.attempts["direct_store"]
	assert.False(t, recorded)
}

func TestExecute_InvalidDate(t *testing.T) {
	settings := &mockSettings{}
	uc, m := newTestUseCase(settings, &mockReader{}, nil, nil)

	req := baseRequest(7)
	req.Date = "next tuesday"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAppointmentTime)
	assert.Equal(t, []string{OutcomeInvalid}, m.outcomes)
	settings.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestExecute_FuzzyTimeNeverFails(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(0)).Return(domain.DefaultCalendarSettings(0), nil)

	uc, _ := newTestUseCase(settings, &mockReader{}, nil, nil, &fakeAttempt{name: "backend_endpoint", id: 1})

	req := baseRequest(0)
	req.Date = "01/15/2024"
	req.Time = "whenever works"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2:00 PM", resp.TimeLabel)
}

func TestExecute_NoWorkingDaysIsUnschedulable(t *testing.T) {
	closed := domain.DefaultCalendarSettings(7)
	closed.WorkingDays = []time.Weekday{}

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(closed, nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	direct := &fakeAttempt{name: "direct_store", id: 1}
	uc, m := newTestUseCase(settings, reader, nil, nil, direct)

	_, err := uc.Execute(context.Background(), baseRequest(7))
	assert.ErrorIs(t, err, ErrNoAvailableSlot)
	assert.Equal(t, []string{OutcomeNoSlot}, m.outcomes)
	assert.Equal(t, []int{domain.SlotSearchMaxIterations}, m.iterations)
	assert.Empty(t, direct.calls)
}

func TestExecute_BypassKeepsConflictingRequest(t *testing.T) {
	manual := domain.DefaultCalendarSettings(7)
	manual.AISchedulingEnabled = false
	manual.ConflictDetectionEnabled = false

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(manual, nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return([]*domain.Appointment{busyAppointment(14, 15)}, nil)

	direct := &fakeAttempt{name: "direct_store", id: 5}
	uc, m := newTestUseCase(settings, reader, nil, nil, direct)

	req := baseRequest(7)
	req.Time = "2:00 PM"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC), resp.Start)
	assert.False(t, resp.Adjusted)
	assert.False(t, direct.calls[0].CheckOverlap)
	assert.Empty(t, m.iterations)
}

func TestExecute_DegradedCollaborators(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).
		Return(domain.CalendarSettings{}, errors.New("settings store down"))
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, errors.New("listing timeout"))

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notif.On("SendAdminAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	direct := &fakeAttempt{name: "direct_store", err: errors.New("db down")}
	backend := &fakeAttempt{name: "backend_endpoint", err: errors.New("502")}

	uc, m := newTestUseCase(settings, reader, nil, notif, direct, backend)

	resp, err := uc.Execute(context.Background(), baseRequest(7))
	require.NoError(t, err)

	// Значения по умолчанию: 14:15 на 60 минут
	assert.Equal(t, time.Date(2024, 1, 15, 14, 15, 0, 0, time.UTC), resp.Start)
	assert.Nil(t, resp.AppointmentID)
	assert.Empty(t, resp.PersistedBy)
	assert.Len(t, backend.calls, 1)

	steps := make([]string, 0, len(resp.Warnings))
	for _, w := range resp.Warnings {
		steps = append(steps, w.Step)
	}
	assert.ElementsMatch(t, []string{
		StepResolveSettings,
		StepListAppointments,
		StepConfirmation,
		StepAdminAlert,
		StepPersist,
		StepPersist,
	}, steps)
	assert.ElementsMatch(t, steps, m.warnings)
	assert.Equal(t, []string{OutcomeUnpersisted}, m.outcomes)
	assert.False(t, m.attempts["direct_store"])
	assert.False(t, m.attempts["backend_endpoint"])
}

func TestExecute_SlotTakenStopsPersistenceChain(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(domain.DefaultCalendarSettings(7), nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	direct := &fakeAttempt{name: "direct_store", err: ErrSlotTaken}
	backend := &fakeAttempt{name: "backend_endpoint", id: 1}

	uc, _ := newTestUseCase(settings, reader, nil, nil, direct, backend)

	resp, err := uc.Execute(context.Background(), baseRequest(7))
	require.NoError(t, err)
	assert.Nil(t, resp.AppointmentID)
	assert.Empty(t, backend.calls)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, StepPersist, resp.Warnings[0].Step)
}

func TestExecute_NoApplicableStrategyWarns(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(0)).Return(domain.DefaultCalendarSettings(0), nil)

	uc, _ := newTestUseCase(settings, &mockReader{}, nil, nil, &fakeAttempt{name: "direct_store", err: ErrAttemptSkipped})

	resp, err := uc.Execute(context.Background(), baseRequest(0))
	require.NoError(t, err)
	assert.Nil(t, resp.AppointmentID)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, StepPersist, resp.Warnings[0].Step)
}

func TestExecute_ExternalEvent(t *testing.T) {
	integrated := domain.DefaultCalendarSettings(7)
	integrated.IntegrationType = ptr.Ptr("google")
	integrated.AutoConfirm = true
	integrated.SMSRemindersEnabled = true
	integrated.NewAppointmentAlertsEnabled = false

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(integrated, nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	link := ptr.Ptr("https://meet.example.com/abc")
	conf := &mockConferencing{}
	conf.On("Authenticated").Return(true)
	conf.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e conferencing.EventRequest) bool {
		return e.Summary == "Showing with Jane Doe" &&
			e.Start.Equal(time.Date(2024, 1, 15, 14, 15, 0, 0, time.UTC)) &&
			len(e.Attendees) == 1 && e.Attendees[0] == "jane@example.com"
	})).Return(&conferencing.Event{EventID: "evt-1", MeetLink: link}, nil)

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.MatchedBy(func(d notifier.AppointmentDetails) bool {
		return d.Confirmed && d.TimeLabel == "2:15 PM"
	}), link, true).Return(nil)

	uc, _ := newTestUseCase(settings, reader, conf, notif, &fakeAttempt{name: "direct_store", id: 3})

	resp, err := uc.Execute(context.Background(), baseRequest(7))
	require.NoError(t, err)

	assert.Equal(t, link, resp.ConferenceLink)
	assert.Equal(t, "evt-1", *resp.ExternalEventID)
	assert.True(t, resp.Confirmed)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, domain.Reminders{ClientEnabled: true, ClientLeadMinutes: 60}, resp.Reminders)

	conf.AssertExpectations(t)
	notif.AssertExpectations(t)
	notif.AssertNotCalled(t, "SendAdminAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ExternalEventFailureIsWarning(t *testing.T) {
	integrated := domain.DefaultCalendarSettings(0)
	integrated.IntegrationType = ptr.Ptr("google")

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(0)).Return(integrated, nil)

	conf := &mockConferencing{}
	conf.On("Authenticated").Return(true)
	conf.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, conferencing.ErrUnauthorized)

	uc, _ := newTestUseCase(settings, &mockReader{}, conf, nil, &fakeAttempt{name: "backend_endpoint", id: 1})

	resp, err := uc.Execute(context.Background(), baseRequest(0))
	require.NoError(t, err)
	assert.Nil(t, resp.ConferenceLink)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, StepExternalEvent, resp.Warnings[0].Step)
}

func TestExecute_UnauthenticatedIntegrationIsSkipped(t *testing.T) {
	integrated := domain.DefaultCalendarSettings(0)
	integrated.IntegrationType = ptr.Ptr("google")

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(0)).Return(integrated, nil)

	conf := &mockConferencing{}
	conf.On("Authenticated").Return(false)

	uc, _ := newTestUseCase(settings, &mockReader{}, conf, nil, &fakeAttempt{name: "backend_endpoint", id: 1})

	resp, err := uc.Execute(context.Background(), baseRequest(0))
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
	conf.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestUseCase(&mockSettings{}, &mockReader{}, nil, nil)

	cases := map[string]func(r *Request){
		"name with line break": func(r *Request) { r.ClientName = "Bob\r\nBcc: victim@evil.test" },
		"name with tab":        func(r *Request) { r.ClientName = "Bob\tSmith" },
		"unknown kind":         func(r *Request) { r.Kind = "Party" },
		"long duration":        func(r *Request) { r.DurationMinutes = domain.MaxDurationMinutes + 1 },
		"unknown status":       func(r *Request) { r.Status = ptr.Ptr(domain.AppointmentStatus("Pending")) },
		"negative lead":        func(r *Request) { r.Reminders.AgentLeadMinutes = ptr.Ptr(-5) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := baseRequest(7)
			mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InvalidDateIsInvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(&mockSettings{}, &mockReader{}, nil, nil)

	req := baseRequest(7)
	req.Date = "someday"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAppointmentTime)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EmailWithDisplayNameIsNormalized(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(domain.DefaultCalendarSettings(7), nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.MatchedBy(func(d notifier.AppointmentDetails) bool {
		return d.ClientEmail == "bob@example.com" && d.ClientName == "Bob"
	}), mock.Anything, mock.Anything).Return(nil)
	notif.On("SendAdminAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	direct := &fakeAttempt{name: "direct_store", id: 3}
	uc, _ := newTestUseCase(settings, reader, nil, notif, direct)

	req := baseRequest(7)
	req.ClientName = "  Bob "
	req.ClientEmail = " Bob <bob@example.com> "

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
	require.Len(t, direct.calls, 1)
	assert.Equal(t, "bob@example.com", direct.calls[0].Appointment.ClientEmail)
	assert.Equal(t, "Bob", direct.calls[0].Appointment.ClientName)
	notif.AssertExpectations(t)
}

func TestExecute_MissingContactDegrades(t *testing.T) {
	cases := map[string]string{
		"empty email":   "",
		"invalid email": "not-an-email",
	}

	for name, email := range cases {
		t.Run(name, func(t *testing.T) {
			settings := &mockSettings{}
			settings.On("Resolve", mock.Anything, int64(7)).Return(domain.DefaultCalendarSettings(7), nil)
			reader := &mockReader{}
			reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

			direct := &fakeAttempt{name: "direct_store", id: 4}
			uc, m := newTestUseCase(settings, reader, nil, nil, direct)

			req := baseRequest(7)
			req.ClientName = " "
			req.ClientEmail = email

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)
			require.NotNil(t, resp.AppointmentID)
			require.Len(t, resp.Warnings, 1)
			assert.Equal(t, StepContact, resp.Warnings[0].Step)
			assert.Equal(t, []string{StepContact}, m.warnings)
			assert.Empty(t, direct.calls[0].Appointment.ClientEmail)
			assert.Empty(t, direct.calls[0].Appointment.ClientName)
		})
	}
}

func TestExecute_SlotTakenNotifiesClient(t *testing.T) {
	confirmed := domain.DefaultCalendarSettings(7)
	confirmed.AutoConfirm = true
	confirmed.NewAppointmentAlertsEnabled = false

	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(confirmed, nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notif.On("SendSlotTaken", mock.Anything, mock.MatchedBy(func(d notifier.AppointmentDetails) bool {
		return d.ClientEmail == "jane@example.com" && d.Confirmed && d.TimeLabel == "2:15 PM"
	})).Return(errors.New("smtp down")).Once()

	direct := &fakeAttempt{name: "direct_store", err: ErrSlotTaken}
	uc, _ := newTestUseCase(settings, reader, nil, notif, direct)

	resp, err := uc.Execute(context.Background(), baseRequest(7))
	require.NoError(t, err)
	assert.Nil(t, resp.AppointmentID)

	steps := make([]string, 0, len(resp.Warnings))
	for _, w := range resp.Warnings {
		steps = append(steps, w.Step)
	}
	assert.Equal(t, []string{StepPersist, StepSlotTakenNotice}, steps)
	notif.AssertExpectations(t)
}

func TestExecute_PersistFailureDoesNotSendSlotTakenNotice(t *testing.T) {
	settings := &mockSettings{}
	settings.On("Resolve", mock.Anything, int64(7)).Return(domain.DefaultCalendarSettings(7), nil)
	reader := &mockReader{}
	reader.On("ListByOwner", mock.Anything, mock.Anything).Return(nil, nil)

	notif := &mockNotifier{}
	notif.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notif.On("SendAdminAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	direct := &fakeAttempt{name: "direct_store", err: errors.New("connection reset")}
	uc, _ := newTestUseCase(settings, reader, nil, notif, direct)

	resp, err := uc.Execute(context.Background(), baseRequest(7))
	require.NoError(t, err)
	assert.Nil(t, resp.AppointmentID)
	notif.AssertNotCalled(t, "SendSlotTaken", mock.Anything, mock.Anything)
}
