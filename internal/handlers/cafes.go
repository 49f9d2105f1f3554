package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/models"
	"jakca/internal/places"
	"jakca/internal/service"
)

// Geolocation failure codes a client may report instead of coordinates.
var geoErrorCodes = map[string]struct{}{
	"denied":      {},
	"unavailable": {},
	"timeout":     {},
	"unsupported": {},
}

// Coordinate is a fallback position used when the client has none.
type Coordinate struct {
	Lat float64
	Lng float64
}

const (
	maxLatitude  = 90
	maxLongitude = 180
)

var errCoordinateRange = errors.New("coordinate out of range")

// parseCoordinate reads a float query parameter bounded by ±limit. Blank
// values yield nil.
func parseCoordinate(raw string, limit float64) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return nil, errCoordinateRange
	}
	return &v, nil
}

func GetNearbyCafes(finder NearbyFinder, fallback Coordinate) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "CAFE"
		defer handlePanic(c, route)

		lat, errLat := parseCoordinate(c.Query("lat"), maxLatitude)
		lng, errLng := parseCoordinate(c.Query("lng"), maxLongitude)
		if errLat != nil || errLng != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":          "invalid coordinates",
				"showSimpleList": true,
			})
			return
		}

		if lat == nil || lng == nil {
			if _, ok := geoErrorCodes[strings.ToLower(c.Query("geoError"))]; ok {
				log.Printf("[CAFE] [INFO] geolocation %s, using fallback coordinate", c.Query("geoError"))
				lat, lng = &fallback.Lat, &fallback.Lng
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cafes, err := finder.Nearby(ctx, lat, lng)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingCoordinates):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":          err.Error(),
					"showSimpleList": true,
				})
			case errors.Is(err, service.ErrUpstream):
				log.Println("[CAFE] [ERROR] nearby search failed:", err)
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
					"error":          service.ErrUpstream.Error(),
					"data":           []models.Cafe{},
					"showSimpleList": true,
				})
			default:
				respondServiceError(c, route, err)
			}
			return
		}
		if cafes == nil {
			cafes = []models.Cafe{}
		}

		c.JSON(http.StatusOK, gin.H{
			"data":           cafes,
			"showSimpleList": len(cafes) == 0,
		})
	}
}

func GetCafe(detailer CafeDetailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "CAFE"
		defer handlePanic(c, route)

		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			respondWithError(c, http.StatusBadRequest, route, "cafe id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		cafe, err := detailer.Detail(ctx, id)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, cafe)
	}
}

// GetLocality resolves the caller's coordinate to a "district neighbourhood"
// label. Lookup failures degrade to a generic label.
func GetLocality(resolver LocalityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "LOCALITY"
		defer handlePanic(c, route)

		lat, errLat := parseCoordinate(c.Query("lat"), maxLatitude)
		lng, errLng := parseCoordinate(c.Query("lng"), maxLongitude)
		if errLat != nil || errLng != nil || lat == nil || lng == nil {
			c.JSON(http.StatusOK, gin.H{"locality": places.UnknownLocality})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		locality, err := resolver.ReverseGeocode(ctx, *lat, *lng)
		if err != nil {
			log.Println("[LOCALITY] [WARN] reverse geocode failed:", err)
			locality = places.DefaultLocality
		}
		c.JSON(http.StatusOK, gin.H{"locality": locality})
	}
}
