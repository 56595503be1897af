// Package context carries the request ID and the request-scoped logger from
// the deliveries (HTTP requests, scheduler ticks, Pub/Sub pushes) down to the
// usecases, repositories and dispatch events.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey types the values this package stores on a context.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request ID stored on the echo context, then the one
// on the request context, and generates a new one when neither exists.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request ID of ctx, or "" when none is set.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// WithRequestScope attaches requestID and a logger derived from base that
// tags every record with it. Extra attrs are added to the logger as well.
func WithRequestScope(ctx context.Context, base *slog.Logger, requestID string, attrs ...any) context.Context {
	logger := base.With(slog.String("request_id", requestID))
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	return WithLogger(WithRequestID(ctx, requestID), logger)
}

// EnsureRequestID returns ctx unchanged when it already has a request ID.
// Otherwise it scopes ctx to a generated "<prefix>-<uuid>" ID.
func EnsureRequestID(ctx context.Context, base *slog.Logger, prefix string) (context.Context, string) {
	if id := GetRequestIDFromContext(ctx); id != "" {
		return ctx, id
	}

	id := prefix + "-" + uuid.New().String()

	return WithRequestScope(ctx, GetLoggerOrDefault(ctx, base), id), id
}

// GetLogger returns the request-scoped logger of ctx, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger of ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
