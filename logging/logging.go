package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level string
	// LevelVar, when set, makes the handler level dynamic. It is initialised from Level.
	LevelVar *slog.LevelVar
}

// NewLogger creates a new slog.Logger with JSON handler and the specified output.
// The level is parsed from the config; defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	var leveler slog.Leveler = ParseLevel(config.Level)

	if config.LevelVar != nil {
		config.LevelVar.Set(ParseLevel(config.Level))
		leveler = config.LevelVar
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       leveler,
		ReplaceAttr: nil,
	})

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	parsed, ok := LookupLevel(level)
	if !ok {
		return slog.LevelInfo
	}

	return parsed
}

// LookupLevel maps a case-insensitive level name to a slog.Level.
// TRACE and FATAL are accepted as aliases of DEBUG and ERROR.
func LookupLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE", "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR", "FATAL":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
