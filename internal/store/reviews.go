package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jakca/internal/models"
)

type ReviewStore struct {
	reviews *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{reviews: db.Collection(reviewsCollection)}
}

func (s *ReviewStore) InsertReview(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if _, err := s.reviews.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// CafeRatings returns every rating recorded for the cafe.
func (s *ReviewStore) CafeRatings(ctx context.Context, cafeID string) ([]int, error) {
	opts := options.Find().SetProjection(bson.M{"rating": 1})
	cursor, err := s.reviews.Find(ctx, bson.M{"cafeId": cafeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := []int{}
	for cursor.Next(ctx) {
		var doc struct {
			Rating int `bson:"rating"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		ratings = append(ratings, doc.Rating)
	}
	return ratings, cursor.Err()
}

// DeleteUserReviews removes the user's reviews of one cafe and returns how
// many were removed.
func (s *ReviewStore) DeleteUserReviews(ctx context.Context, cafeID, userID string) (int64, error) {
	res, err := s.reviews.DeleteMany(ctx, bson.M{"cafeId": cafeID, "userId": userID})
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *ReviewStore) ReviewsByCafe(ctx context.Context, cafeID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.reviews.Find(ctx, bson.M{"cafeId": cafeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// ReviewsByUser returns one page of the user's reviews, newest first, and
// the total number of reviews the user wrote.
func (s *ReviewStore) ReviewsByUser(ctx context.Context, userID string, page, limit int64) ([]models.Review, int64, error) {
	filter := bson.M{"userId": userID}
	total, err := s.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := s.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, total, nil
}
