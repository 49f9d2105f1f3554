package service

import (
	"context"
	"errors"

	"jakca/internal/models"
	"jakca/internal/store"
)

// Cafes serves single-cafe lookups.
type Cafes struct {
	cafes   CafeRepository
	reviews ReviewRepository
}

func NewCafes(cafes CafeRepository, reviews ReviewRepository) *Cafes {
	return &Cafes{cafes: cafes, reviews: reviews}
}

// Detail returns the stored cafe with its reviews attached.
func (s *Cafes) Detail(ctx context.Context, id string) (*models.Cafe, error) {
	cafe, err := s.cafes.FindCafe(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCafeNotFound
		}
		return nil, err
	}
	reviews, err := s.reviews.ReviewsByCafe(ctx, id)
	if err != nil {
		return nil, err
	}
	cafe.Reviews = reviews
	cafe.FromRepository = true
	cafe.Source = models.SourceRepository
	return cafe, nil
}
