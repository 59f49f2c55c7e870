// Package log centralizes structured logging setup and the shared field
// names used across components, so log lines stay greppable as the codebase
// grows.
package log

import (
	"log/slog"
	"os"
)

// Shared attribute keys. Using the constants keeps field names consistent
// between packages.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldRequestID = "request_id"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
)

// Component names used with FieldComponent.
const (
	ComponentServer  = "server"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
)

// New creates a text-format slog logger writing to stdout at the given
// level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetDefault installs the logger as the process default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// ForComponent returns the default logger tagged with a component name.
func ForComponent(name string) *slog.Logger {
	return slog.Default().With(FieldComponent, name)
}
