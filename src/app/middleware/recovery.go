package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"teamroster/src/app/http/response"
	"teamroster/src/infra/logger"
)

// Recovery turns a panic in a later handler into a 500 INTERNAL_ERROR
// envelope and logs it with the stack. Register it before every other
// middleware.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), log, "panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)

				response.InternalError(c, GetRequestID(c))
				c.Abort()
			}
		}()

		c.Next()
	}
}
