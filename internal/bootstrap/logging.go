package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/boolean-maybe/sieve/config"
)

// ParseLogLevel maps a config level name to a slog level. Unknown names
// fall back to error.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// InitLogging installs a text handler on stderr at the configured level as
// the default logger and returns the level.
func InitLogging(cfg *config.Config) slog.Level {
	return initLogging(cfg, os.Stderr)
}

func initLogging(cfg *config.Config, w io.Writer) slog.Level {
	level := ParseLogLevel(cfg.Logging.Level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "level", level.String())
	return level
}
