package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jakca/internal/models"
)

// StatusGuard allows the request only when the session's account status is
// one of allowed. It must run after UserAuth.
func StatusGuard(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		status := session.Status
		if status == "" {
			status = models.StatusActive
		}
		if len(allowed) > 0 {
			match := false
			for _, s := range allowed {
				if status == s {
					match = true
					break
				}
			}
			if !match {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Next()
	}
}

// ActiveOnly rejects inactive and banned accounts.
func ActiveOnly() gin.HandlerFunc {
	return StatusGuard(models.StatusActive)
}
