package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatsprint/internal/server/http/dto"
)

const adminTokenHeader = "X-Admin-Token"

// AdminRequired guards admin routes with a shared secret. An empty secret
// leaves the routes open.
func AdminRequired(secret string, logger *slog.Logger) gin.HandlerFunc {
	if secret == "" {
		logger.Warn("ADMIN_TOKEN is not set, admin endpoints are unauthenticated")
		return func(c *gin.Context) { c.Next() }
	}

	expected := []byte(secret)
	return func(c *gin.Context) {
		provided := strings.TrimSpace(c.GetHeader(adminTokenHeader))
		if provided == "" {
			provided = bearerToken(c)
		}
		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{Message: "Admin access required"})
			return
		}
		c.Next()
	}
}
