// Package logger builds the service's slog loggers.
//
// Records logged with a context tagged by ContextWithRequestID carry a
// request_id attribute, so repository and pgx trace lines can be matched to
// the HTTP request that caused them. The pgx tracer adapter lives in pgx.go.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"teamroster/src/infra/config"
)

// RequestIDAttr is the attribute key used for request ids.
const RequestIDAttr = "request_id"

// New returns a logger writing to stdout.
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter returns a logger writing to w. Format is json (default),
// text or plain; plain writes the bare message.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "plain":
		handler = &plainHandler{level: level, w: w}
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(requestIDHandler{handler})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns a logger that tags every record with requestID.
func WithRequestID(log *slog.Logger, requestID string) *slog.Logger {
	return log.With(RequestIDAttr, requestID)
}

// WithComponent returns a logger tagged with a component name.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	return log.With("component", component)
}

type requestIDKey struct{}

// ContextWithRequestID returns ctx carrying requestID for context-aware
// log calls. An empty id leaves ctx unchanged.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Info logs at info level with ctx. A nil log is a no-op.
func Info(ctx context.Context, log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.InfoContext(ctx, msg, args...)
}

// Warn logs at warn level with ctx. A nil log is a no-op.
func Warn(ctx context.Context, log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.WarnContext(ctx, msg, args...)
}

// Error logs at error level with ctx. A nil log is a no-op.
func Error(ctx context.Context, log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.ErrorContext(ctx, msg, args...)
}

// Debug logs at debug level with ctx. A nil log is a no-op.
func Debug(ctx context.Context, log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.DebugContext(ctx, msg, args...)
}

// requestIDHandler copies the request id carried by the record's context
// into the record.
type requestIDHandler struct {
	slog.Handler
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String(RequestIDAttr, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{h.Handler.WithGroup(name)}
}

// plainHandler writes only the log message.
type plainHandler struct {
	level slog.Level
	w     io.Writer
	mu    sync.Mutex
}

func (h *plainHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.level
}

func (h *plainHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, r.Message)
	return err
}

func (h *plainHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *plainHandler) WithGroup(string) slog.Handler { return h }
