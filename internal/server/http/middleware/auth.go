package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "storefront_token"
	bearerPrefix     = "bearer "
)

// TokenParser resolves an auth token to a user identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired rejects requests without a valid token and stores the user ID
// under UserIDContextKey for downstream handlers.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := parser.ParseToken(token)
		switch {
		case err == nil:
			c.Set(UserIDContextKey, userID)
			c.Next()
		case errors.Is(err, pkgAuth.ErrInvalidToken):
			c.AbortWithStatus(http.StatusUnauthorized)
		default:
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

// OptionalAuth resolves the caller when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if userID, err := parser.ParseToken(token); err == nil {
				c.Set(UserIDContextKey, userID)
			}
		}
		c.Next()
	}
}

// extractToken prefers the Authorization header over the session cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); len(header) > len(bearerPrefix) &&
		strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}

	cookie, err := c.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// SetAuthCookie hands the session token to the client as an http-only cookie
// and mirrors it in the Authorization header for API clients.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
