package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/auth"
	"github.com/workviyo/taskboard-api/internal/constants"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
)

// RequireAuth checks that the request carries a valid bearer token or an
// authenticated session
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				apierrors.Unauthorized(c, "Invalid authorization header")
				c.Abort()
				return
			}
			userID, err := tokens.Parse(strings.TrimSpace(tokenString))
			if err != nil {
				apierrors.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}
