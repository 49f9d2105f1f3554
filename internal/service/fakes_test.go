package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jakca/internal/geo"
	"jakca/internal/models"
	"jakca/internal/store"
)

// memoryStore is an in-memory stand-in for the Mongo repositories. Its
// transactions snapshot all state and restore it when fn fails.
type memoryStore struct {
	mu      sync.Mutex
	cafes   map[string]models.Cafe
	reviews []models.Review
	likes   map[[2]string]time.Time
	events  []string

	failInsertReview error
	failUpdateRating error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		cafes: map[string]models.Cafe{},
		likes: map[[2]string]time.Time{},
	}
}

func (m *memoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	cafes := make(map[string]models.Cafe, len(m.cafes))
	for k, v := range m.cafes {
		cafes[k] = v
	}
	reviews := append([]models.Review(nil), m.reviews...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.cafes = cafes
		m.reviews = reviews
		m.events = append(m.events, "rollback")
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memoryStore) CafesInBox(ctx context.Context, box geo.Box, minRating float64, limit int) ([]models.Cafe, error) {
	return nil, nil
}

func (m *memoryStore) CafeKeys(ctx context.Context) ([]models.CafeSummary, error) {
	return nil, nil
}

func (m *memoryStore) FindCafe(ctx context.Context, id string) (*models.Cafe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cafe, ok := m.cafes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &cafe, nil
}

func (m *memoryStore) FindCafes(ctx context.Context, ids []string) (map[string]models.CafeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.CafeSummary{}
	for _, id := range ids {
		if cafe, ok := m.cafes[id]; ok {
			out[id] = models.CafeSummary{ID: cafe.ID, Name: cafe.Name, Address: cafe.Address, Rating: cafe.Rating}
		}
	}
	return out, nil
}

func (m *memoryStore) ListCafeIDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.cafes))
	for id := range m.cafes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryStore) EnsureCafe(ctx context.Context, cafe models.Cafe) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cafes[cafe.ID]; ok {
		return false, nil
	}
	m.cafes[cafe.ID] = cafe
	m.events = append(m.events, "cafe:"+cafe.ID)
	return true, nil
}

func (m *memoryStore) UpdateCafeRating(ctx context.Context, cafeID string, rating *float64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdateRating != nil {
		return m.failUpdateRating
	}
	cafe, ok := m.cafes[cafeID]
	if !ok {
		return store.ErrNotFound
	}
	cafe.Rating = rating
	cafe.ReviewCount = count
	m.cafes[cafeID] = cafe
	return nil
}

func (m *memoryStore) InsertReview(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsertReview != nil {
		return m.failInsertReview
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	m.reviews = append(m.reviews, *review)
	m.events = append(m.events, "review:"+review.CafeID)
	return nil
}

func (m *memoryStore) CafeRatings(ctx context.Context, cafeID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ratings []int
	for _, r := range m.reviews {
		if r.CafeID == cafeID {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings, nil
}

func (m *memoryStore) DeleteUserReviews(ctx context.Context, cafeID, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.reviews[:0]
	var removed int64
	for _, r := range m.reviews {
		if r.CafeID == cafeID && r.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.reviews = kept
	return removed, nil
}

func (m *memoryStore) ReviewsByCafe(ctx context.Context, cafeID string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.reviews {
		if r.CafeID == cafeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) ReviewsByUser(ctx context.Context, userID string, page, limit int64) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			all = append(all, r)
		}
	}
	start := (page - 1) * limit
	if start >= int64(len(all)) {
		return []models.Review{}, int64(len(all)), nil
	}
	end := start + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[start:end], int64(len(all)), nil
}

func (m *memoryStore) AddLike(ctx context.Context, userID, cafeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{userID, cafeID}
	if _, ok := m.likes[key]; !ok {
		m.likes[key] = time.Now()
	}
	return nil
}

func (m *memoryStore) RemoveLike(ctx context.Context, userID, cafeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{userID, cafeID}
	_, ok := m.likes[key]
	delete(m.likes, key)
	return ok, nil
}

func (m *memoryStore) HasLike(ctx context.Context, userID, cafeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[[2]string{userID, cafeID}]
	return ok, nil
}

func (m *memoryStore) CountLikes(ctx context.Context, cafeID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if key[1] == cafeID {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) LikesByUser(ctx context.Context, userID string) ([]models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Like{}
	for key, at := range m.likes {
		if key[0] == userID {
			out = append(out, models.Like{UserID: key[0], CafeID: key[1], CreatedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CafeID < out[j].CafeID })
	return out, nil
}

// memoryTokens keeps refresh tokens in memory.
type memoryTokens struct {
	mu     sync.Mutex
	tokens map[primitive.ObjectID]*models.RefreshToken
}

func newMemoryTokens() *memoryTokens {
	return &memoryTokens{tokens: map[primitive.ObjectID]*models.RefreshToken{}}
}

func (m *memoryTokens) InsertRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	cp := *token
	m.tokens[token.ID] = &cp
	return nil
}

func (m *memoryTokens) FindActiveRefreshToken(ctx context.Context, hash string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.tokens {
		if token.TokenHash == hash && !token.Revoked {
			cp := *token
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryTokens) RevokeRefreshToken(ctx context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[id]
	if !ok || token.Revoked {
		return store.ErrNotFound
	}
	token.Revoked = true
	token.ReplacedByToken = replacedBy
	return nil
}

func (m *memoryTokens) RevokeByHash(ctx context.Context, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, token := range m.tokens {
		if token.TokenHash == hash && !token.Revoked {
			token.Revoked = true
			return true, nil
		}
	}
	return false, nil
}

// racingTokens revokes a token right after it is found, as a concurrent
// refresh of the same token would.
type racingTokens struct {
	*memoryTokens
}

func (r racingTokens) FindActiveRefreshToken(ctx context.Context, hash string) (*models.RefreshToken, error) {
	token, err := r.memoryTokens.FindActiveRefreshToken(ctx, hash)
	if err != nil {
		return nil, err
	}
	if err := r.memoryTokens.RevokeRefreshToken(ctx, token.ID, nil); err != nil {
		return nil, err
	}
	return token, nil
}
