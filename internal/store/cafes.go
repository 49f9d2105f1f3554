package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jakca/internal/geo"
	"jakca/internal/models"
)

type CafeStore struct {
	cafes *mongo.Collection
}

func NewCafeStore(db *mongo.Database) *CafeStore {
	return &CafeStore{cafes: db.Collection(cafesCollection)}
}

// CafesInBox returns rated cafes whose coordinates fall inside box, best
// rated first.
func (s *CafeStore) CafesInBox(ctx context.Context, box geo.Box, minRating float64, limit int) ([]models.Cafe, error) {
	filter := bson.M{
		"latitude":  bson.M{"$gte": box.MinLat, "$lte": box.MaxLat},
		"longitude": bson.M{"$gte": box.MinLng, "$lte": box.MaxLng},
		"rating":    bson.M{"$gte": minRating},
	}
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.cafes.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find cafes in box: %w", err)
	}
	defer cursor.Close(ctx)

	cafes := []models.Cafe{}
	if err := cursor.All(ctx, &cafes); err != nil {
		return nil, fmt.Errorf("decode cafes: %w", err)
	}
	return cafes, nil
}

// CafeKeys lists every stored cafe regardless of rating or location.
func (s *CafeStore) CafeKeys(ctx context.Context) ([]models.CafeSummary, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1, "address": 1})
	cursor, err := s.cafes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cafe keys: %w", err)
	}
	defer cursor.Close(ctx)

	keys := []models.CafeSummary{}
	if err := cursor.All(ctx, &keys); err != nil {
		return nil, fmt.Errorf("decode cafe keys: %w", err)
	}
	return keys, nil
}

func (s *CafeStore) FindCafe(ctx context.Context, id string) (*models.Cafe, error) {
	var cafe models.Cafe
	if err := s.cafes.FindOne(ctx, bson.M{"_id": id}).Decode(&cafe); err != nil {
		return nil, notFound(err)
	}
	return &cafe, nil
}

// FindCafes returns the summaries of the given ids keyed by id. Unknown ids
// are absent from the map.
func (s *CafeStore) FindCafes(ctx context.Context, ids []string) (map[string]models.CafeSummary, error) {
	out := make(map[string]models.CafeSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "address": 1, "rating": 1})
	cursor, err := s.cafes.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cafes: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.CafeSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode cafes: %w", err)
	}
	for _, summary := range summaries {
		out[summary.ID] = summary
	}
	return out, nil
}

func (s *CafeStore) ListCafeIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.cafes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode cafe id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

// EnsureCafe inserts cafe when its id is not stored yet. It reports whether
// this call created the row. A concurrent insert of the same id counts as
// already existing.
func (s *CafeStore) EnsureCafe(ctx context.Context, cafe models.Cafe) (bool, error) {
	now := time.Now()
	if cafe.CreatedAt.IsZero() {
		cafe.CreatedAt = now
	}
	if cafe.UpdatedAt.IsZero() {
		cafe.UpdatedAt = now
	}

	onInsert := bson.M{
		"name":        cafe.Name,
		"address":     cafe.Address,
		"latitude":    cafe.Latitude,
		"longitude":   cafe.Longitude,
		"rating":      cafe.Rating,
		"reviewCount": cafe.ReviewCount,
		"images":      cafe.Images,
		"features":    cafe.Features,
		"comments":    cafe.Comments,
		"createdAt":   cafe.CreatedAt,
		"updatedAt":   cafe.UpdatedAt,
	}
	res, err := s.cafes.UpdateOne(ctx,
		bson.M{"_id": cafe.ID},
		bson.M{"$setOnInsert": onInsert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("ensure cafe: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

// UpdateCafeRating stores the aggregate. A nil rating means no reviews.
func (s *CafeStore) UpdateCafeRating(ctx context.Context, cafeID string, rating *float64, count int) error {
	res, err := s.cafes.UpdateByID(ctx, cafeID, bson.M{"$set": bson.M{
		"rating":      rating,
		"reviewCount": count,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("update cafe rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
