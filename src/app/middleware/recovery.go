package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery is a middleware that recovers from panics and answers with a 500.
// The panic is logged with its stack trace; the client only sees a generic
// error, as an HTML page for page requests when pages is set.
//
// This should be the first middleware in the chain to catch all panics.
//
// Usage:
//
//	router.Use(middleware.Recovery(logger, pages))
func Recovery(log *slog.Logger, pages ErrorPages) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered",
					"request_id", GetRequestID(c),
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)

				renderInternalError(c, pages)
				c.Abort()
			}
		}()

		c.Next()
	}
}
