package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"taskboard/internal/apperrors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// AbortWithError is the single point where errors become HTTP responses.
// Typed errors keep their status and code; anything else is a 500.
func AbortWithError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("")
	}
	c.AbortWithStatusJSON(appErr.StatusCode, errorEnvelope{
		Success: false,
		Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// NotFoundHandler renders the envelope for unmatched routes.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, apperrors.RouteNotFound(c.Request.Method, c.Request.URL.Path))
	}
}
