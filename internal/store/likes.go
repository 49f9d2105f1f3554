package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jakca/internal/models"
)

type LikeStore struct {
	likes *mongo.Collection
}

func NewLikeStore(db *mongo.Database) *LikeStore {
	return &LikeStore{likes: db.Collection(likesCollection)}
}

// AddLike records the like once; repeating it is a no-op.
func (s *LikeStore) AddLike(ctx context.Context, userID, cafeID string) error {
	_, err := s.likes.UpdateOne(ctx,
		bson.M{"userId": userID, "cafeId": cafeID},
		bson.M{"$setOnInsert": bson.M{"createdAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

// RemoveLike reports whether a like existed.
func (s *LikeStore) RemoveLike(ctx context.Context, userID, cafeID string) (bool, error) {
	res, err := s.likes.DeleteOne(ctx, bson.M{"userId": userID, "cafeId": cafeID})
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *LikeStore) HasLike(ctx context.Context, userID, cafeID string) (bool, error) {
	count, err := s.likes.CountDocuments(ctx, bson.M{"userId": userID, "cafeId": cafeID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("find like: %w", err)
	}
	return count > 0, nil
}

func (s *LikeStore) CountLikes(ctx context.Context, cafeID string) (int64, error) {
	count, err := s.likes.CountDocuments(ctx, bson.M{"cafeId": cafeID})
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// LikesByUser returns the user's likes, most recent first.
func (s *LikeStore) LikesByUser(ctx context.Context, userID string) ([]models.Like, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.likes.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find likes: %w", err)
	}
	defer cursor.Close(ctx)

	likes := []models.Like{}
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	return likes, nil
}
