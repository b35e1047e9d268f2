package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	if id, ok := GetUserID(r.Context()); ok {
		w.Header().Set("X-Seen-User", "yes")
		_ = id
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestAuth(t *testing.T) {
	h := Auth(http.HandlerFunc(echoUser))

	cases := []struct {
		header string
		status int
	}{
		{header: "", status: http.StatusUnauthorized},
		{header: "abc", status: http.StatusUnauthorized},
		{header: "0", status: http.StatusUnauthorized},
		{header: "-3", status: http.StatusUnauthorized},
		{header: " 42 ", status: http.StatusNoContent},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set(UserIDHeader, tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "header %q", tc.header)
	}
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(http.HandlerFunc(echoUser))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Seen-User"))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(UserIDHeader, "7")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "yes", rec.Header().Get("X-Seen-User"))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(UserIDHeader, "seven")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, existing)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, existing, seen)
}

type observed struct {
	method, route, status string
}

type fakeObserver struct {
	calls []observed
}

func (f *fakeObserver) ObserveHTTP(method, route, status string, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(obs))
	r.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/appointments/15", nil))

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observed{method: "GET", route: "/appointments/{appointmentId}", status: "404"}, obs.calls[0])
}
