package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"jakca/internal/models"
	"jakca/internal/store"
)

type LikeStatus struct {
	Count   int64 `json:"count"`
	IsLiked bool  `json:"isLiked"`
}

// CafeRef identifies a listed cafe that may not be stored yet, such as a
// live or franchise entry of the nearby list.
type CafeRef struct {
	Name    string
	Address string
	Lat     *float64
	Lng     *float64
}

type Likes struct {
	likes LikeRepository
	cafes CafeRepository
	now   func() time.Time
}

func NewLikes(likes LikeRepository, cafes CafeRepository) *Likes {
	return &Likes{likes: likes, cafes: cafes, now: time.Now}
}

// Status returns the like count and, for a signed-in caller, whether they
// liked the cafe.
func (s *Likes) Status(ctx context.Context, session *Session, cafeID string) (LikeStatus, error) {
	count, err := s.likes.CountLikes(ctx, cafeID)
	if err != nil {
		return LikeStatus{}, err
	}
	status := LikeStatus{Count: count}
	if session.Authenticated() {
		liked, err := s.likes.HasLike(ctx, session.UserID, cafeID)
		if err != nil {
			return LikeStatus{}, err
		}
		status.IsLiked = liked
	}
	return status, nil
}

// Like is idempotent: liking twice leaves one like. A cafe that is not
// stored yet is created from ref when ref derives the same id.
func (s *Likes) Like(ctx context.Context, session *Session, cafeID string, ref *CafeRef) (LikeStatus, error) {
	if err := session.requireActive(); err != nil {
		return LikeStatus{}, err
	}
	_, err := s.cafes.FindCafe(ctx, cafeID)
	if errors.Is(err, store.ErrNotFound) {
		err = s.ensureListed(ctx, cafeID, ref)
	}
	if err != nil {
		return LikeStatus{}, err
	}
	if err := s.likes.AddLike(ctx, session.UserID, cafeID); err != nil {
		return LikeStatus{}, err
	}
	return s.Status(ctx, session, cafeID)
}

func (s *Likes) ensureListed(ctx context.Context, cafeID string, ref *CafeRef) error {
	if ref == nil {
		return ErrCafeNotFound
	}
	name, address := strings.TrimSpace(ref.Name), strings.TrimSpace(ref.Address)
	if name == "" || address == "" || models.CafeID(name, address) != cafeID {
		return ErrCafeNotFound
	}
	now := s.now()
	_, err := s.cafes.EnsureCafe(ctx, models.Cafe{
		ID:        cafeID,
		Name:      name,
		Address:   address,
		Latitude:  ref.Lat,
		Longitude: ref.Lng,
		Images:    models.StringList{},
		Comments:  models.StringList{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

func (s *Likes) Unlike(ctx context.Context, session *Session, cafeID string) (LikeStatus, error) {
	if !session.Authenticated() {
		return LikeStatus{}, ErrUnauthenticated
	}
	if _, err := s.likes.RemoveLike(ctx, session.UserID, cafeID); err != nil {
		return LikeStatus{}, err
	}
	return s.Status(ctx, session, cafeID)
}

func (s *Likes) Count(ctx context.Context, cafeID string) (int64, error) {
	return s.likes.CountLikes(ctx, cafeID)
}

// LikedCafes lists the caller's liked cafes. Likes of cafes that no longer
// exist are skipped.
func (s *Likes) LikedCafes(ctx context.Context, session *Session) ([]models.LikedCafe, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	likes, err := s.likes.LikesByUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.CafeID)
	}
	cafes, err := s.cafes.FindCafes(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.LikedCafe, 0, len(likes))
	for _, like := range likes {
		cafe, ok := cafes[like.CafeID]
		if !ok {
			continue
		}
		out = append(out, models.LikedCafe{
			ID:      cafe.ID,
			Name:    cafe.Name,
			Address: cafe.Address,
			Rating:  cafe.Rating,
			LikedAt: like.CreatedAt,
		})
	}
	return out, nil
}
