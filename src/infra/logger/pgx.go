package logger

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// PgxLogger adapts slog to pgx's tracelog.Logger.
type PgxLogger struct {
	log *slog.Logger
}

// NewPgxLogger returns a tracelog.Logger writing to log.
func NewPgxLogger(log *slog.Logger) *PgxLogger {
	return &PgxLogger{log: log}
}

var _ tracelog.Logger = (*PgxLogger)(nil)

func (l *PgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if l.log == nil {
		return
	}
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.log.LogAttrs(ctx, pgxLevel(level), msg, attrs...)
}

func pgxLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	case tracelog.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
