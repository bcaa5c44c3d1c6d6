package logger

import (
	"log/slog"

	"balance_assistant/internal/app/port"
)

// slogAdapter implements port.Logger on top of the global slog logger.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter returns a port.Logger that writes through the global slog logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) logger() *slog.Logger {
	ensureInitialized()
	if len(a.attrs) == 0 {
		return globalLogger
	}
	return globalLogger.With(a.attrs...)
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger().Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.logger().Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger().Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger().Error(msg, args...)
}

// With returns an adapter that prepends args to every record.
func (a *slogAdapter) With(args ...any) port.Logger {
	attrs := make([]any, 0, len(a.attrs)+len(args))
	attrs = append(attrs, a.attrs...)
	attrs = append(attrs, args...)
	return &slogAdapter{attrs: attrs}
}

// nopLogger discards everything.
type nopLogger struct{}

// NewNop returns a port.Logger that discards all records.
func NewNop() port.Logger { return nopLogger{} }

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func (n nopLogger) With(...any) port.Logger { return n }
