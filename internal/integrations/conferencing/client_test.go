package conferencing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowingService/pkg/logger"
)

func TestClient_CreateEvent(t *testing.T) {
	start := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req EventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Showing with Jane", req.Summary)
		assert.True(t, start.Equal(req.Start))
		assert.Equal(t, []string{"jane@example.com"}, req.Attendees)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"event_id":"evt-1","meet_link":"https://meet.example.com/abc"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "secret", time.Second, logger.Discard())
	require.True(t, client.Authenticated())

	event, err := client.CreateEvent(context.Background(), EventRequest{
		Summary:   "Showing with Jane",
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: []string{"jane@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", event.EventID)
	require.NotNil(t, event.MeetLink)
	assert.Equal(t, "https://meet.example.com/abc", *event.MeetLink)
}

func TestClient_CreateEvent_Errors(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusUnauthorized)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()

	_, err := NewClient(srv.URL, "", time.Second, logger.Discard()).CreateEvent(ctx, EventRequest{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	client := NewClient(srv.URL, "secret", time.Second, logger.Discard())

	_, err = client.CreateEvent(ctx, EventRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	status.Store(http.StatusBadGateway)
	_, err = client.CreateEvent(ctx, EventRequest{})
	assert.ErrorIs(t, err, ErrInvalidResponse)

	status.Store(http.StatusOK)
	_, err = client.CreateEvent(ctx, EventRequest{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
