package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/apperr"
	"github.com/Gajendran57/GoalGrid/pkg/config"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 2}, staticToken(token), zap.NewNop())
	return client, srv
}

func TestRequestsCarryCurrentToken(t *testing.T) {
	var gotAuth, gotTrace string
	client, _ := newTestClient(t, "tok-abc", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace-ID")
		json.NewEncoder(w).Encode(map[string]any{"id": "u1"})
	}))

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotTrace == "" {
		t.Error("requests must carry a trace ID")
	}
}

func TestEmptyTokenOmitsAuthorizationHeader(t *testing.T) {
	var sawAuth bool
	client, _ := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(map[string]any{"id": "u1"})
	}))

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawAuth {
		t.Error("cleared token must not be sent")
	}
}

func TestUnauthorizedBecomesAuthenticationError(t *testing.T) {
	client, _ := newTestClient(t, "stale", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token"})
	}))

	_, err := client.Me(context.Background())
	if !apperr.IsAuthentication(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if err.Error() != "Invalid token" {
		t.Errorf("backend detail not surfaced verbatim: %q", err.Error())
	}
}

func TestRegisterConflictSurfacedAsAuthError(t *testing.T) {
	client, _ := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))

	_, err := client.Register(context.Background(), "Dana", "dana@example.com", "hunter2")
	if !apperr.IsAuthentication(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if err.Error() != "Email already registered" {
		t.Errorf("backend detail not surfaced verbatim: %q", err.Error())
	}
}

func TestServerErrorBecomesNetworkError(t *testing.T) {
	client, _ := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Dashboard(context.Background())
	var nwErr *apperr.NetworkError
	if !asNetwork(err, &nwErr) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestConnectionFailureBecomesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 1}, staticToken("tok"), zap.NewNop())

	_, err := client.Streaks(context.Background())
	var nwErr *apperr.NetworkError
	if !asNetwork(err, &nwErr) {
		t.Fatalf("expected network error, got %v", err)
	}
	if retryable, _ := apperr.IsRetryable(err); !retryable {
		t.Error("connection failures should classify as retryable")
	}
}

func TestTrackSendsPayloadAndIdempotencyKey(t *testing.T) {
	var body TrackRequest
	var requestID string
	client, _ := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"id": "r1", "habit_id": "h1", "completed": true})
	}))

	value := 3.0
	record, err := client.TrackHabit(context.Background(), "h1", TrackRequest{Completed: true, Value: &value})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.HabitID != "h1" || !record.Completed {
		t.Errorf("unexpected record: %+v", record)
	}
	if body.Value == nil || *body.Value != 3.0 {
		t.Errorf("payload value = %v, want 3", body.Value)
	}
	if requestID == "" {
		t.Error("mutations must carry an idempotency key")
	}
}

func TestExportReturnsRawBlob(t *testing.T) {
	client, _ := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("habit,date,completed\n"))
	}))

	export, err := client.ExportHabits(context.Background(), "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ContentType != "text/csv" {
		t.Errorf("content type = %q", export.ContentType)
	}
	if string(export.Data) != "habit,date,completed\n" {
		t.Errorf("unexpected blob: %q", export.Data)
	}
}

func asNetwork(err error, target **apperr.NetworkError) bool {
	return errors.As(err, target)
}
