package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/blog-api/internal/constants"
)

// LoadSession copies the session's user ID into the context when present
func LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if userID := session.Get(constants.ContextKeyUserID); userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
		}
		if username := session.Get(constants.ContextKeyUsername); username != nil {
			c.Set(constants.ContextKeyUsername, username)
		}
		c.Next()
	}
}

// RequireAuth checks if the user is authenticated via session. Anonymous
// requests are redirected to the login page with the original path in next.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		if username := session.Get(constants.ContextKeyUsername); username != nil {
			c.Set(constants.ContextKeyUsername, username)
		}
		c.Next()
	}
}

// LoginURL returns the login page address that returns to next afterwards
func LoginURL(next string) string {
	if next == "" {
		return constants.RouteLogin
	}
	return constants.RouteLogin + "?" + url.Values{"next": {next}}.Encode()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
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

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUsername)
}
