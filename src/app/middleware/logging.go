package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"teamroster/src/infra/logger"
)

// maxLoggedBody caps how much of a request or response body is logged.
const maxLoggedBody = 2048

// Logging emits one structured line per request, tagged with the request id.
// Bodies are included at debug level only.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		debug := log.Enabled(c.Request.Context(), slog.LevelDebug)

		// Capture request body
		var reqBodyBytes []byte
		if debug && c.Request.Body != nil {
			reqBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
		}

		// Capture response body
		var rec *responseCapture
		if debug {
			rec = &responseCapture{ResponseWriter: c.Writer}
			c.Writer = rec
		}

		// Process request
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		if debug {
			attrs = append(attrs,
				"request", truncate(string(reqBodyBytes)),
				"response", truncate(rec.body.String()),
			)
		}

		reqLog := logger.WithRequestID(log, GetRequestID(c))
		// Choose log level based on status code
		switch {
		case status >= 500:
			reqLog.Error("request completed", attrs...)
		case status >= 400:
			reqLog.Warn("request completed", attrs...)
		default:
			reqLog.Info("request completed", attrs...)
		}
	}
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "..."
}
