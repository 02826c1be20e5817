package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/txprep/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

const (
	// LevelEnv overrides the log level (debug, info, warn, error)
	LevelEnv = "TXPREP_LOG_LEVEL"
	// FormatEnv selects the handler, "text" (default) or "json"
	FormatEnv = "TXPREP_LOG_FORMAT"
)

// NewLogger creates the process logger on stderr. Logs never share stdout
// with command output, so --json output stays parseable.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return NewLoggerTo(os.Stderr, cfg)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, cfg *config.RuntimeConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFromEnv(slog.LevelInfo),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if len(groups) == 0 {
					return slog.Attr{}
				}
			case slog.SourceKey:
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	if strings.EqualFold(os.Getenv(FormatEnv), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func levelFromEnv(fallback slog.Level) slog.Level {
	val := strings.TrimSpace(os.Getenv(LevelEnv))
	if val == "" {
		return fallback
	}
	if strings.EqualFold(val, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(val)); err != nil {
		return fallback
	}
	return level
}

// shortPath trims a source path to its location inside the module
func shortPath(file string) string {
	if idx := strings.LastIndex(file, "/internal/"); idx != -1 {
		return file[idx+1:]
	}
	return filepath.Base(file)
}
