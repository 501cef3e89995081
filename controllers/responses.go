// controllers/responses.go - Shared response helpers
package controllers

import (
	"log"
	"net/http"

	"case-management-api/config"

	"github.com/gin-gonic/gin"
)

// respondValidationErrors reports a 422 with a field→message map. Validation
// failures are a client problem and are never logged as server errors.
func respondValidationErrors(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"error":   "Validation failed",
		"errors":  errors,
	})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondServerError logs the failure with its operation name and reports a
// generic 500. The raw error is only exposed when APP_DEBUG=true.
func respondServerError(c *gin.Context, operation string, err error) {
	log.Printf("[%s] unexpected error: %v", operation, err)

	message := "Something went wrong, please try again"
	if config.DebugEnabled() && err != nil {
		message = err.Error()
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   message,
	})
}
