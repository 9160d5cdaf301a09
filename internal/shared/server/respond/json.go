package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Private marks the response as per-visitor so shared caches never store
// content served behind the gate.
func Private(c *gin.Context) {
	c.Header("Cache-Control", "private, no-store")
	c.Header("Vary", "Cookie")
}

// HTML renders a named template with the given status.
func HTML(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}
