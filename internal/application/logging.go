package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/center-timetable/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, fallback *slog.Logger, service, operation string, attrs ...any) *slog.Logger {
	logger := logging.OrDefault(ctx, fallback)
	pairs := []any{"service", service, "operation", operation}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind classifies service errors for structured log output.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return "validation"
		}
		return "internal"
	}
}
