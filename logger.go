package raypack

import (
	"log/slog"

	"github.com/gogpu/raypack/internal/logging"
)

// SetLogger configures the logger for raypack and all its sub-packages.
// By default, raypack produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by raypack:
//   - [slog.LevelDebug]: per-frame diagnostics (tile counts, seeds, scissor)
//   - [slog.LevelInfo]: lifecycle events (device attached, target resized, pool reset)
//   - [slog.LevelWarn]: non-fatal issues (software GPU adapter)
//   - [slog.LevelError]: kernel panics recovered from a worker
//
// Example:
//
//	// Enable info-level logging to stderr:
//	raypack.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	raypack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by raypack.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.L()
}
