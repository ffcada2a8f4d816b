package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/apperrors"
	"taskboard/internal/services"
)

// ContextUserID is the Gin context key the verified user ID is stored under.
const ContextUserID = "user_id"

// RequireAuth validates the Authorization bearer token and stores the user ID
// in the request context. Token failures are rendered through the shared
// error envelope.
func RequireAuth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AbortWithError(c, apperrors.InvalidToken().WithDetails("Authorization header is required"))
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			AbortWithError(c, apperrors.InvalidToken().WithDetails("Authorization header must use Bearer token"))
			return
		}

		userID, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
