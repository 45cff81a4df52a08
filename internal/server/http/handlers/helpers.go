package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatsprint/internal/server/http/middleware"
)

// CurrentUserID returns the id stored by AuthRequired, or zero.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDContextKey)
}

// bindJSON decodes the request body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}
