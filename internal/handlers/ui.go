package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/banner"
)

// Home sends browsers that hit the API root to the web app.
func Home(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, frontendURL)
	}
}

func Healthz(client Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ensureDBConnection(c.Request.Context(), client); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, "HEALTH", "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func GetBanner(provider BannerProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "BANNER"
		defer handlePanic(c, route)

		slot := strings.TrimSpace(c.Param("slot"))
		b, err := provider.Banner(c.Request.Context(), slot)
		if err != nil {
			if errors.Is(err, banner.ErrUnknownSlot) {
				respondWithError(c, http.StatusNotFound, route, "banner not found")
				return
			}
			respondServiceError(c, route, err)
			return
		}
		c.Header("Cache-Control", "public, max-age=300")
		c.JSON(http.StatusOK, b)
	}
}
