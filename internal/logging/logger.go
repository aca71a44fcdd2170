// Package logging defines the structured-logging interface used by the
// services and the CLI, with a log/slog implementation.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "deposit completed", "user_id", id, "amount", amount)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is used for rejected business operations (frozen account, bad amount).
	Warn(ctx context.Context, msg string, args ...any)
	// Error is used for persistence failures.
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
