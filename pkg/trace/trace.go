package trace

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New generates a fresh trace ID for one client-initiated operation.
func New() string {
	return uuid.NewString()
}

// FromContext returns the trace ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok {
		return traceID
	}
	return ""
}

// WithContext attaches a trace ID to ctx.
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// HeaderName is the HTTP header the backend expects the trace ID on.
func HeaderName() string {
	return "X-Trace-ID"
}
