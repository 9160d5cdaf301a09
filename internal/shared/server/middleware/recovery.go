package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"biography-site/internal/shared/server/respond"
	"biography-site/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. The log line carries
// whatever locale, view and gate state the handler had resolved before it
// failed.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("request.panic", withSiteFields(c, map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"panic":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			}))
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			c.Abort()
		}()
		c.Next()
	}
}
