package logger

import (
	"context"
)

type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyLogger    contextKey = "logger"
)

// WithRequestIDContext adds request ID to context
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithUserIDContext adds user ID to context
func WithUserIDContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// WithLoggerContext attaches a request-scoped logger to ctx.
func WithLoggerContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, log)
}

// GetRequestID gets request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// FromContext returns the request-scoped logger, falling back to the global one.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(ContextKeyLogger).(Logger); ok {
		return log
	}
	return Get()
}
