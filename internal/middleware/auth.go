package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/bloggang/writing-challenge-api/internal/constants"
	apperrors "github.com/bloggang/writing-challenge-api/internal/errors"
)

// RequireAuth checks if the member is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		memberID := session.Get(constants.ContextKeyMemberID)

		if memberID == nil {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store member ID in context for easy access in handlers
		c.Set(constants.ContextKeyMemberID, memberID)
		c.Next()
	}
}

// GetMemberID retrieves the current member ID from context
func GetMemberID(c *gin.Context) (uint64, bool) {
	memberID, exists := c.Get(constants.ContextKeyMemberID)
	if !exists {
		return 0, false
	}

	switch v := memberID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
