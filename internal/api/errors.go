package api

import (
	"errors"
	"log/slog"
	"net/http"

	"restaupilot/internal/assistant"
	"restaupilot/internal/auth"
	"restaupilot/internal/billing"
	"restaupilot/internal/database"

	"github.com/gin-gonic/gin"
)

// respondError writes {success:false,error} with a status derived from err.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, database.ErrInvalid),
		errors.Is(err, billing.ErrUnknownPolicy),
		errors.Is(err, billing.ErrInvalidTotal),
		errors.Is(err, billing.ErrInvalidShare),
		errors.Is(err, assistant.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrBadCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
