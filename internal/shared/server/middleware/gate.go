package middleware

import (
	"github.com/gin-gonic/gin"

	"biography-site/biography/gate"
	"biography-site/internal/shared/telemetry"
)

// GateOpener builds the request's gate and settles it.
type GateOpener func(c *gin.Context) (gate.State, error)

// RequireUnlocked runs locked instead of the rest of the chain unless the
// request's gate settles Unlocked. Storage errors read as Locked.
func RequireUnlocked(open GateOpener, locked gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := open(c)
		if err != nil {
			telemetry.Warn("gate.init_failed", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err,
			})
			state = gate.Locked
		}
		c.Set(GateStateKey, state.String())
		if state != gate.Unlocked {
			locked(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
