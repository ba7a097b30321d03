package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQuery is the duration above which a statement is logged at warn level.
const slowQuery = 500 * time.Millisecond

// maxSQLLength bounds the SQL text attached to log records.
const maxSQLLength = 200

// gormLogger sends GORM output to the default slog logger under
// component=gorm. Statements are debug records unless they fail or are slow.
type gormLogger struct {
	slow time.Duration
}

func newGormLogger() gormLogger {
	return gormLogger{slow: slowQuery}
}

func (gormLogger) log() *slog.Logger {
	return slog.Default().With(slog.String("component", "gorm"))
}

// LogMode is a no-op; slog decides what is written.
func (l gormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info logs a GORM message at info level.
func (l gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log().InfoContext(ctx, fmt.Sprintf(msg, args...))
}

// Warn logs a GORM message at warn level.
func (l gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log().WarnContext(ctx, fmt.Sprintf(msg, args...))
}

// Error logs a GORM message at error level.
func (l gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log().ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

// Trace is called by GORM after every statement. ErrRecordNotFound is a
// normal empty result and is not reported as an error.
func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	log := l.log()

	level := slog.LevelDebug
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		level = slog.LevelError
	case l.slow > 0 && elapsed > l.slow:
		level = slog.LevelWarn
	}
	if !log.Enabled(ctx, level) {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", shortenSQL(sql)),
		slog.Int64("rows", rows),
		slog.Duration("duration", elapsed),
	}
	msg := "sql"
	switch level {
	case slog.LevelError:
		msg = "sql failed"
		attrs = append(attrs, slog.String("error", err.Error()))
	case slog.LevelWarn:
		msg = "slow sql"
	}
	log.LogAttrs(ctx, level, msg, attrs...)
}

// shortenSQL keeps the head and tail of long statements.
func shortenSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	keep := (maxSQLLength - 3) / 2
	return sql[:keep] + "..." + sql[len(sql)-keep:]
}
