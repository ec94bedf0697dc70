package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. Handlers and services receive it via
// injection rather than reaching for slog.Default.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
