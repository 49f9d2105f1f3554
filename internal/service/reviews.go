package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jakca/internal/metrics"
	"jakca/internal/models"
	"jakca/internal/places"
	"jakca/internal/store"
)

// ReviewInput is a review as submitted from the review form.
type ReviewInput struct {
	CafeName            string
	Address             string
	Lat                 *float64
	Lng                 *float64
	Rating              int
	Comment             string
	Purpose             string
	Seats               string
	DeskHeight          string
	Outlets             string
	Wifi                string
	Atmosphere          []string
	VisitDate           string
	VisitTime           string
	StayDuration        string
	PriceSatisfaction   int
	OverallSatisfaction int
}

// ReviewResult reports what a submission changed.
type ReviewResult struct {
	Review      models.Review `json:"review"`
	CafeID      string        `json:"cafeId"`
	CafeCreated bool          `json:"cafeCreated"`
	Rating      *float64      `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
}

type Reviews struct {
	tx      Transactor
	cafes   CafeRepository
	reviews ReviewRepository
	places  places.Searcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReviews(tx Transactor, cafes CafeRepository, reviews ReviewRepository, searcher places.Searcher, m *metrics.Metrics) *Reviews {
	return &Reviews{
		tx:      tx,
		cafes:   cafes,
		reviews: reviews,
		places:  searcher,
		metrics: m,
		now:     time.Now,
	}
}

// Submit makes sure the cafe row exists, stores the review and refreshes the
// cafe's aggregate rating in one transaction. Nothing is kept when any step
// fails.
func (r *Reviews) Submit(ctx context.Context, session *Session, in ReviewInput) (*ReviewResult, error) {
	if err := session.requireActive(); err != nil {
		return nil, err
	}
	if err := validateReview(in); err != nil {
		r.metrics.ReviewOutcome("invalid")
		return nil, err
	}

	name := strings.TrimSpace(in.CafeName)
	address := strings.TrimSpace(in.Address)
	cafeID := models.CafeID(name, address)
	now := r.now()

	features := models.Features{
		Seats:      models.ParseSeats(in.Seats),
		DeskHeight: models.ParseDeskHeight(in.DeskHeight),
		Outlets:    models.ParseOutlets(in.Outlets),
		Wifi:       models.ParseWifi(in.Wifi),
		Atmosphere: models.StringList(in.Atmosphere),
	}

	lat, lng := in.Lat, in.Lng
	if lat == nil || lng == nil {
		lat, lng = r.lookupCoordinates(ctx, name, address)
	}

	cafe := models.Cafe{
		ID:        cafeID,
		Name:      name,
		Address:   address,
		Latitude:  lat,
		Longitude: lng,
		Images:    models.StringList{},
		Features:  features,
		Comments:  models.StringList{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var result ReviewResult
	err := r.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := r.cafes.EnsureCafe(txCtx, cafe)
		if err != nil {
			return err
		}

		review := models.Review{
			CafeID:              cafeID,
			UserID:              session.UserID,
			UserName:            session.Nickname,
			Rating:              in.Rating,
			Comment:             strings.TrimSpace(in.Comment),
			Purpose:             strings.TrimSpace(in.Purpose),
			Features:            features,
			Atmosphere:          models.StringList(in.Atmosphere),
			VisitDate:           in.VisitDate,
			VisitTime:           in.VisitTime,
			StayDuration:        in.StayDuration,
			PriceSatisfaction:   in.PriceSatisfaction,
			OverallSatisfaction: in.OverallSatisfaction,
			CreatedAt:           now,
		}
		if err := r.reviews.InsertReview(txCtx, &review); err != nil {
			return err
		}

		rating, count, err := r.recompute(txCtx, cafeID)
		if err != nil {
			return err
		}

		result = ReviewResult{
			Review:      review,
			CafeID:      cafeID,
			CafeCreated: created,
			Rating:      rating,
			ReviewCount: count,
		}
		return nil
	})
	if err != nil {
		log.Printf("[REVIEW] [ERROR] submit for cafe %s failed: %v", cafeID, err)
		r.metrics.ReviewOutcome("failed")
		return nil, fmt.Errorf("submit review: %w", err)
	}

	log.Printf("[REVIEW] [INFO] review stored for cafe %s (created=%t)", cafeID, result.CafeCreated)
	r.metrics.ReviewOutcome("created")
	return &result, nil
}

// Delete removes the caller's reviews of the cafe and refreshes its rating.
func (r *Reviews) Delete(ctx context.Context, session *Session, cafeID string) (int64, error) {
	if !session.Authenticated() {
		return 0, ErrUnauthenticated
	}

	var removed int64
	err := r.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		n, err := r.reviews.DeleteUserReviews(txCtx, cafeID, session.UserID)
		if err != nil {
			return err
		}
		removed = n
		if n == 0 {
			return nil
		}
		_, _, err = r.recompute(txCtx, cafeID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrCafeNotFound
		}
		return 0, fmt.Errorf("delete review: %w", err)
	}
	return removed, nil
}

// Recompute rewrites the aggregate rating of one cafe from its reviews.
func (r *Reviews) Recompute(ctx context.Context, cafeID string) (*float64, int, error) {
	rating, count, err := r.recompute(ctx, cafeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, ErrCafeNotFound
	}
	return rating, count, err
}

// RecomputeAll refreshes every stored cafe and returns how many were updated.
func (r *Reviews) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := r.cafes.ListCafeIDs(ctx)
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		if _, _, err := r.recompute(ctx, id); err != nil {
			return i, fmt.Errorf("recompute %s: %w", id, err)
		}
	}
	return len(ids), nil
}

// ForCafe lists the cafe's reviews, newest first.
func (r *Reviews) ForCafe(ctx context.Context, cafeID string) ([]models.Review, error) {
	return r.reviews.ReviewsByCafe(ctx, cafeID)
}

// ForUser lists one page of the caller's reviews with cafe names attached.
func (r *Reviews) ForUser(ctx context.Context, session *Session, page, limit int64) ([]models.UserReview, int64, error) {
	if !session.Authenticated() {
		return nil, 0, ErrUnauthenticated
	}
	reviews, total, err := r.reviews.ReviewsByUser(ctx, session.UserID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.CafeID)
	}
	cafes, err := r.cafes.FindCafes(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.UserReview, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, models.UserReview{
			CafeID:    review.CafeID,
			CafeName:  cafes[review.CafeID].Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	return out, total, nil
}

func (r *Reviews) recompute(ctx context.Context, cafeID string) (*float64, int, error) {
	ratings, err := r.reviews.CafeRatings(ctx, cafeID)
	if err != nil {
		return nil, 0, err
	}
	rating := meanRating(ratings)
	if err := r.cafes.UpdateCafeRating(ctx, cafeID, rating, len(ratings)); err != nil {
		return nil, 0, err
	}
	return rating, len(ratings), nil
}

// coordinateLookupSize bounds how many keyword matches are checked against
// the submitted cafe.
const coordinateLookupSize = 5

// lookupCoordinates asks the live API for the cafe's position and only
// accepts a match with the same name and address. Failures are ignored; the
// cafe is then stored without coordinates.
func (r *Reviews) lookupCoordinates(ctx context.Context, name, address string) (*float64, *float64) {
	if r.places == nil {
		return nil, nil
	}
	matches, err := r.places.SearchKeyword(ctx, places.KeywordQuery{
		Query: name + " " + address,
		Size:  coordinateLookupSize,
	})
	if err != nil {
		log.Printf("[REVIEW] [WARN] coordinate lookup for %q failed: %v", name, err)
		return nil, nil
	}
	key := models.NewCafeKey(name, address)
	for _, place := range matches {
		if models.NewCafeKey(place.Name, place.Address) == key {
			lat, lng := place.Lat, place.Lng
			return &lat, &lng
		}
	}
	log.Printf("[REVIEW] [INFO] no live match for %q at %q", name, address)
	return nil, nil
}

func meanRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	mean := float64(sum) / float64(len(ratings))
	return &mean
}

func validateReview(in ReviewInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(in.CafeName) == "" || strings.TrimSpace(in.Address) == "" {
		return fmt.Errorf("%w: cafe name and address are required", ErrInvalidReview)
	}
	if strings.TrimSpace(in.Comment) == "" {
		return fmt.Errorf("%w: comment is required", ErrInvalidReview)
	}
	for _, score := range []int{in.PriceSatisfaction, in.OverallSatisfaction} {
		if score < 0 || score > 5 {
			return fmt.Errorf("%w: satisfaction must be between 1 and 5", ErrInvalidReview)
		}
	}
	return nil
}
