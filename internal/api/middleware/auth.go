package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hsapparel/storefront/internal/config"
)

// AdminAuthMiddleware guards the admin routes with a single bearer API
// key, verified against the configured bcrypt hash
func AdminAuthMiddleware(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Admin.KeyHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		key := strings.TrimPrefix(authHeader, "Bearer ")
		if key == "" || key == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.KeyHash), []byte(key)); err != nil {
			logger.Warn("Rejected admin API key", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
