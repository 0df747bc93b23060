package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/apperr"
	"github.com/Gajendran57/GoalGrid/pkg/circuitbreaker"
	"github.com/Gajendran57/GoalGrid/pkg/config"
	"github.com/Gajendran57/GoalGrid/pkg/logger"
	"github.com/Gajendran57/GoalGrid/pkg/metrics"
	"github.com/Gajendran57/GoalGrid/pkg/trace"
)

// TokenSource supplies the current session token at request time. Requests
// always read through it so a cleared or rotated token is never carried
// stale by other components.
type TokenSource interface {
	Token() string
}

// Client talks to the habit-tracker REST backend. Every request carries
// the current bearer token (when present), a trace ID and a per-request
// idempotency key, and runs under circuit-breaker protection.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewClient(cfg config.BackendConfig, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(), // bounded: a fetch never hangs from the caller's view
		},
		tokens:  tokens,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}
}

// statusError is a non-2xx backend response with its decoded detail
// message. The detail is surfaced verbatim to callers.
type statusError struct {
	StatusCode int
	Detail     string
}

func (e *statusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// do performs one JSON round-trip. body and out may be nil.
func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	c.setHeaders(ctx, req, method, body != nil)

	start := time.Now()
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if err != nil {
		metrics.RecordBackendRequest(endpoint, "error", time.Since(start))
		return &apperr.NetworkError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordBackendRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(ctx, endpoint, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// doRaw performs one round-trip and returns the raw body, for blob
// endpoints like export.
func (c *Client) doRaw(ctx context.Context, method, endpoint, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	c.setHeaders(ctx, req, method, false)

	start := time.Now()
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if err != nil {
		metrics.RecordBackendRequest(endpoint, "error", time.Since(start))
		return nil, "", &apperr.NetworkError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordBackendRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", c.decodeError(ctx, endpoint, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, method string, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	traceID := trace.FromContext(ctx)
	if traceID == "" {
		traceID = trace.New()
	}
	req.Header.Set(trace.HeaderName(), traceID)

	// Mutations carry an idempotency key so a retried dispatch is safe to
	// replay on the backend.
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
}

// decodeError turns a non-2xx response into the taxonomy error for its
// status, preserving the backend's detail message verbatim.
func (c *Client) decodeError(ctx context.Context, endpoint string, resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	logger.WithTrace(ctx, c.logger).Warn("Backend request failed",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", payload.Detail),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		msg := payload.Detail
		if msg == "" {
			msg = "session expired"
		}
		return &apperr.AuthenticationError{Message: msg}
	}

	return &apperr.NetworkError{
		Op:  endpoint,
		Err: &statusError{StatusCode: resp.StatusCode, Detail: payload.Detail},
	}
}
