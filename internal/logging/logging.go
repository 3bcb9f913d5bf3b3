// Package logging configures the process-wide slog default.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON slog handler as the default logger. The level comes
// from LOG_LEVEL (DEBUG, INFO, WARN, ERROR; default INFO); debug forces
// DEBUG regardless, which is how the DEBUG env flag turns on verbose
// diagnostic output.
func Setup(debug bool) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fatal logs at Error level and exits with code 1.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
