package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jakca/internal/geo"
	"jakca/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_repositories.go -package=mocks jakca/internal/service CafeRepository,UserRepository
//go:generate mockgen -destination=../mocks/mock_places.go -package=mocks jakca/internal/places Searcher

type CafeRepository interface {
	CafesInBox(ctx context.Context, box geo.Box, minRating float64, limit int) ([]models.Cafe, error)
	CafeKeys(ctx context.Context) ([]models.CafeSummary, error)
	FindCafe(ctx context.Context, id string) (*models.Cafe, error)
	FindCafes(ctx context.Context, ids []string) (map[string]models.CafeSummary, error)
	ListCafeIDs(ctx context.Context) ([]string, error)
	EnsureCafe(ctx context.Context, cafe models.Cafe) (bool, error)
	UpdateCafeRating(ctx context.Context, cafeID string, rating *float64, count int) error
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, review *models.Review) error
	CafeRatings(ctx context.Context, cafeID string) ([]int, error)
	DeleteUserReviews(ctx context.Context, cafeID, userID string) (int64, error)
	ReviewsByCafe(ctx context.Context, cafeID string) ([]models.Review, error)
	ReviewsByUser(ctx context.Context, userID string, page, limit int64) ([]models.Review, int64, error)
}

type LikeRepository interface {
	AddLike(ctx context.Context, userID, cafeID string) error
	RemoveLike(ctx context.Context, userID, cafeID string) (bool, error)
	HasLike(ctx context.Context, userID, cafeID string) (bool, error)
	CountLikes(ctx context.Context, cafeID string) (int64, error)
	LikesByUser(ctx context.Context, userID string) ([]models.Like, error)
}

type UserRepository interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error
}

type TokenRepository interface {
	InsertRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindActiveRefreshToken(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error
	RevokeByHash(ctx context.Context, hash string) (bool, error)
}

// Transactor runs fn atomically. Repository calls made with the context
// handed to fn join the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
