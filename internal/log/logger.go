// Package log configures slog for the CLI and server and tags records with
// the lift run they belong to.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Townsend-Lab-Yale/lift-coords/internal/config"
)

type runIDKey struct{}

// Logger owns the process logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger on stderr. Stdout is left for table output.
func NewLogger(cfg config.AppConfig) *Logger {
	return NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a Logger writing JSON or terminal lines to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = newTerminalHandler(w, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// Configure creates a Logger from cfg and installs it as the slog default,
// which GORM output also goes through.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg)
	slog.SetDefault(l.logger)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// For returns the logger tagged with the run ID carried by ctx, if any.
func (l *Logger) For(ctx context.Context) *slog.Logger {
	if id := RunID(ctx); id != "" {
		return l.logger.With(slog.String("run_id", id))
	}
	return l.logger
}

// WithRunID returns a context carrying a lift run ID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run ID carried by ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
