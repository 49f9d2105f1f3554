package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"jakca/internal/service"
)

const requestTimeout = 5 * time.Second

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

func ensureDBConnection(ctx context.Context, client Pinger) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return client.Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is a 500 and its detail is only logged.
func respondServiceError(c *gin.Context, route string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCoordinates),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidReview):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrExpiredRefreshToken),
		errors.Is(err, service.ErrInvalidAccessToken):
		respondWithError(c, http.StatusUnauthorized, route, err.Error())
	case errors.Is(err, service.ErrInactiveUser),
		errors.Is(err, service.ErrSignupDisabled):
		respondWithError(c, http.StatusForbidden, route, err.Error())
	case errors.Is(err, service.ErrCafeNotFound):
		respondWithError(c, http.StatusNotFound, route, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(c, http.StatusConflict, route, err.Error())
	case errors.Is(err, service.ErrUpstream):
		log.Printf("[%s] [ERROR] %v", route, err)
		respondWithError(c, http.StatusBadGateway, route, service.ErrUpstream.Error())
	default:
		log.Printf("[%s] [ERROR] %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "internal server error")
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "min", "max":
				details = append(details, fmt.Sprintf("%s is out of range", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
