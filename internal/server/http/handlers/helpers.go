package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// CurrentUserID returns the user resolved by the auth middleware, zero for anonymous requests.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDContextKey)
}
