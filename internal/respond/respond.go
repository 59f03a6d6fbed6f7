// Package respond formats the JSON envelope used by the /api/v1 surface:
// {"success": bool, "data": object|null, "message": string, "timestamp": RFC3339 UTC}.
// The legacy /api catalog endpoints return bare JSON and do not use it.
package respond

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the response body for auth, user and health endpoints.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Success writes an envelope with success=true.
func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: now(),
	})
}

// Error writes an envelope with success=false and null data.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success:   false,
		Data:      nil,
		Message:   message,
		Timestamp: now(),
	})
}

// AbortError writes an error envelope and aborts the handler chain.
// Used by middleware so wrapped handlers never run after a rejection.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Data:      nil,
		Message:   message,
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
