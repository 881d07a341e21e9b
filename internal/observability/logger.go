package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. The trace handler sits in
// front so every record emitted under an active span carries its ids.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
