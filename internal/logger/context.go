package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

var logContextKey = contextKey{}

// LogContext carries the session-scoped fields worth attaching to
// every log line emitted while handling one connection: its remote
// address, bound system_id, and role, none of which the session or
// frame packages know how to name themselves.
type LogContext struct {
	RemoteAddr string
	SystemID   string
	Role       string // "transmitter", "receiver", "transceiver"
}

// WithSession returns a child context carrying lc, retrievable later
// with FromContext.
func WithSession(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext stored by WithSession, or nil.
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// FromCtx returns the process logger with lc's fields bound, falling
// back to the bare process logger when ctx carries none.
func FromCtx(ctx context.Context) *slog.Logger {
	lc := FromContext(ctx)
	if lc == nil {
		return Default()
	}
	args := make([]any, 0, 6)
	if lc.RemoteAddr != "" {
		args = append(args, "remote_addr", lc.RemoteAddr)
	}
	if lc.SystemID != "" {
		args = append(args, "system_id", lc.SystemID)
	}
	if lc.Role != "" {
		args = append(args, "role", lc.Role)
	}
	return Default().With(args...)
}
