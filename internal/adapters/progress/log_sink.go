package progress

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/txprep/internal/usecase"
)

// LogSink reports progress through the logger instead of a terminal
// spinner. Used for --json and --non-interactive runs where stdout belongs
// to the command output.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a progress sink writing to log
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("component", "progress")}
}

// OnProgress logs each pipeline stage at debug level
func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.log.DebugContext(ctx, "stage",
		"stage", event.Stage,
		"step", event.Current,
		"of", event.Total,
	)
}

// Info logs message at info level
func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

// Error logs message at error level
func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

var _ usecase.ProgressSink = (*LogSink)(nil)
