package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/middleware"
	"jakca/internal/service"
)

type reviewRequest struct {
	CafeName            string   `json:"cafeName" binding:"required"`
	Address             string   `json:"address" binding:"required"`
	Lat                 *float64 `json:"lat"`
	Lng                 *float64 `json:"lng"`
	Rating              int      `json:"rating" binding:"required,min=1,max=5"`
	Comment             string   `json:"comment" binding:"required"`
	Purpose             string   `json:"purpose"`
	Seats               string   `json:"seats"`
	DeskHeight          string   `json:"deskHeight"`
	Outlets             string   `json:"outlets"`
	Wifi                string   `json:"wifi"`
	Atmosphere          []string `json:"atmosphere"`
	VisitDate           string   `json:"visitDate"`
	VisitTime           string   `json:"visitTime"`
	StayDuration        string   `json:"stayDuration"`
	PriceSatisfaction   int      `json:"priceSatisfaction" binding:"min=0,max=5"`
	OverallSatisfaction int      `json:"overallSatisfaction" binding:"min=0,max=5"`
}

func (r reviewRequest) input() service.ReviewInput {
	return service.ReviewInput{
		CafeName:            r.CafeName,
		Address:             r.Address,
		Lat:                 r.Lat,
		Lng:                 r.Lng,
		Rating:              r.Rating,
		Comment:             r.Comment,
		Purpose:             r.Purpose,
		Seats:               r.Seats,
		DeskHeight:          r.DeskHeight,
		Outlets:             r.Outlets,
		Wifi:                r.Wifi,
		Atmosphere:          r.Atmosphere,
		VisitDate:           r.VisitDate,
		VisitTime:           r.VisitTime,
		StayDuration:        r.StayDuration,
		PriceSatisfaction:   r.PriceSatisfaction,
		OverallSatisfaction: r.OverallSatisfaction,
	}
}

func CreateReview(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "REVIEW"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*requestTimeout)
		defer cancel()

		result, err := reviews.Submit(ctx, session, req.input())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Printf("[REVIEW] [INFO] review %s stored for cafe %s", result.Review.ID.Hex(), result.CafeID)
		c.JSON(http.StatusCreated, result)
	}
}

func DeleteReview(reviews ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "REVIEW"
		defer handlePanic(c, route)

		session := middleware.CurrentSession(c)
		if session == nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		cafeID := strings.TrimSpace(c.Param("cafeId"))
		if cafeID == "" {
			respondWithError(c, http.StatusBadRequest, route, "cafe id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		removed, err := reviews.Delete(ctx, session, cafeID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		if removed == 0 {
			respondWithError(c, http.StatusNotFound, route, "review not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": removed})
	}
}
