package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"biography-site/internal/shared/telemetry"
)

// Context keys handlers set so the request log can report them.
const (
	LocaleKey    = "locale"
	ViewKey      = "view"
	GateStateKey = "gateState"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		telemetry.Info("request.complete", withSiteFields(c, fields))
	}
}

// withSiteFields copies the locale, view and gate state a handler recorded
// into fields.
func withSiteFields(c *gin.Context, fields map[string]any) map[string]any {
	for _, key := range []string{LocaleKey, ViewKey, GateStateKey} {
		if v := c.GetString(key); v != "" {
			fields[key] = v
		}
	}
	return fields
}
