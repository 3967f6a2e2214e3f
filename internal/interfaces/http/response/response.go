// Package response holds the flat JSON error helpers shared by all
// handlers. Success bodies are endpoint-specific and emitted directly.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error sends an error response with the given status
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
