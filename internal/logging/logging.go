// Package logging provides small helpers around log/slog so that
// operational events, errors, and resource cleanup are reported in a
// consistent shape across the application.
package logging

import (
	"io"
	"log/slog"
)

// LogOperation records a structured operational event.
func LogOperation(logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	logger.Info(operation, args...)
}

// LogError records an error with its message and any additional context.
func LogError(logger *slog.Logger, message string, err error, attrs ...slog.Attr) {
	if logger == nil {
		logger = slog.Default()
	}
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.Any("error", err))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	logger.Error(message, args...)
}

// SafeCloseWithLogging closes a resource and logs a failure instead of
// returning it. Use in defer statements where the close error cannot
// change the outcome of the surrounding function.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, resourceName string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err,
			slog.String("resource", resourceName))
	}
}
