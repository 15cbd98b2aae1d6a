// Package telemetry configures the process-wide structured logger.
package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// LogLevel reads GNI_LOG_LEVEL (debug, info, warn or error). Anything else
// is info.
func LogLevel() slog.Level {
	switch strings.ToLower(os.Getenv("GNI_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger installs a tint console handler on w as the default logger.
// GNI_LOG_FORMAT=json switches to the JSON handler for machine output.
func SetupLogger(w io.Writer) *slog.Logger {
	level := LogLevel()

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("GNI_LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  level == slog.LevelDebug,
			TimeFormat: "15:04:05",
			NoColor:    !isTerminal(w),
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRunID returns a logger tagged with run_id.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
