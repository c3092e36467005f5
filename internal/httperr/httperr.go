package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationFailed reports structural input errors with one message per
// offending field. Nothing is persisted when this is sent.
func ValidationFailed(c *gin.Context, details []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": details,
	})
}
