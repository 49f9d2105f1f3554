package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"jakca/internal/middleware"
	"jakca/internal/models"
)

func GetMe(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := accounts.Profile(ctx, session)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"nickname":  user.Nickname,
			"platform":  user.Platform,
			"status":    user.Status,
			"createdAt": user.CreatedAt,
			"updatedAt": user.UpdatedAt,
		})
	}
}

func GetMyReviews(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "REVIEW"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination parameters")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		items, total, err := reviews.ForUser(ctx, session, page, limit)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if items == nil {
			items = []models.UserReview{}
		}

		totalPages := (total + limit - 1) / limit
		c.JSON(http.StatusOK, gin.H{
			"data": items,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

func GetMyLikes(likes LikeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "LIKE"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cafes, err := likes.LikedCafes(ctx, session)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if cafes == nil {
			cafes = []models.LikedCafe{}
		}
		c.JSON(http.StatusOK, gin.H{"data": cafes})
	}
}
