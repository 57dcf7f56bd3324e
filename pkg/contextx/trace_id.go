package contextx

import (
	"context"
	"fmt"
)

// TraceID correlates the log lines and the error reply produced for one
// request. Middleware seeds it, everything downstream only reads it.
type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

// TraceIDFromContext returns ErrNoValue on a context no middleware has seen,
// callers fall back to an "unsupported" support id.
func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
