package handlers

import (
	"context"

	"jakca/internal/banner"
	"jakca/internal/models"
	"jakca/internal/service"
)

// The handlers depend on these narrow views of the services so tests can
// substitute stubs.

type NearbyFinder interface {
	Nearby(ctx context.Context, lat, lng *float64) ([]models.Cafe, error)
}

type CafeDetailer interface {
	Detail(ctx context.Context, id string) (*models.Cafe, error)
}

type LocalityResolver interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

type ReviewService interface {
	Submit(ctx context.Context, session *service.Session, in service.ReviewInput) (*service.ReviewResult, error)
	Delete(ctx context.Context, session *service.Session, cafeID string) (int64, error)
	ForUser(ctx context.Context, session *service.Session, page, limit int64) ([]models.UserReview, int64, error)
}

type LikeService interface {
	Status(ctx context.Context, session *service.Session, cafeID string) (service.LikeStatus, error)
	Like(ctx context.Context, session *service.Session, cafeID string, ref *service.CafeRef) (service.LikeStatus, error)
	Unlike(ctx context.Context, session *service.Session, cafeID string) (service.LikeStatus, error)
	LikedCafes(ctx context.Context, session *service.Session) ([]models.LikedCafe, error)
}

type AccountService interface {
	Reconcile(ctx context.Context, identity service.ProviderIdentity) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, email, password, nickname string) (*models.User, error)
	Profile(ctx context.Context, session *service.Session) (*models.User, error)
}

type SessionService interface {
	Issue(ctx context.Context, user *models.User) (*service.Tokens, error)
	Refresh(ctx context.Context, plain string) (*service.Tokens, *models.User, error)
	Revoke(ctx context.Context, plain string) error
}

type IdentityProvider interface {
	AuthCodeURL(provider string) (string, error)
	Exchange(ctx context.Context, provider, code, state string) (service.ProviderIdentity, error)
}

type BannerProvider = banner.Provider
