package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/middleware"
	"jakca/internal/service"
)

// GetLikeStatus is public; isLiked is only true for a signed-in caller.
func GetLikeStatus(likes LikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "LIKE"
		defer handlePanic(c, route)

		cafeID := strings.TrimSpace(c.Param("id"))
		if cafeID == "" {
			respondWithError(c, http.StatusBadRequest, route, "cafe id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		status, err := likes.Status(ctx, middleware.CurrentSession(c), cafeID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// likeRequest optionally describes the cafe as listed, so an entry that is
// not stored yet can be liked.
type likeRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

func LikeCafe(likes LikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "LIKE"
		defer handlePanic(c, route)

		var req likeRequest
		if c.Request.Body != nil {
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				respondValidationError(c, err)
				return
			}
		}

		var ref *service.CafeRef
		if req.Name != "" || req.Address != "" {
			ref = &service.CafeRef{Name: req.Name, Address: req.Address, Lat: req.Lat, Lng: req.Lng}
		}
		toggleLike(func(ctx context.Context, session *service.Session, cafeID string) (service.LikeStatus, error) {
			return likes.Like(ctx, session, cafeID, ref)
		})(c)
	}
}

func UnlikeCafe(likes LikeService) gin.HandlerFunc {
	return toggleLike(likes.Unlike)
}

func toggleLike(apply func(context.Context, *service.Session, string) (service.LikeStatus, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "LIKE"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		cafeID := strings.TrimSpace(c.Param("id"))
		if cafeID == "" {
			respondWithError(c, http.StatusBadRequest, route, "cafe id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		status, err := apply(ctx, session, cafeID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
