package httpx

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestLogger returns logger annotated with the request ID, if any.
func RequestLogger(logger *zap.Logger, r *http.Request) *zap.Logger {
	if id := RequestIDFrom(r); id != "" {
		return logger.With(zap.String("request.id", id))
	}
	return logger
}
