package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"taskboard/internal/apperrors"
)

// RecoveryWithLog converts panics into the 500 error envelope instead of
// killing the connection.
func RecoveryWithLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				AbortWithError(c, apperrors.Internal(""))
			}
		}()
		c.Next()
	}
}
