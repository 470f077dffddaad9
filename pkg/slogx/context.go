package slogx

import (
	"context"
	"log/slog"
)

// Attribute keys shared by registry and desk log lines.
const (
	KeyRequestID = "req_id"
	KeyUserID    = "user_id"
	KeyClientID  = "client_id"
)

type loggerKey struct{}

// WithContext stores logger in ctx for FromContext.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the scoped logger, or slog.Default() when the context
// carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// With narrows the logger in ctx by args, which pair up as in slog.Logger.With.
func With(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithUserID tags every later line with the authenticated staff user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return With(ctx, KeyUserID, userID)
}

// WithClientID tags every later line with the client record being handled.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return With(ctx, KeyClientID, clientID)
}
