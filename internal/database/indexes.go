package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index the service relies on. It stops at the
// first failure.
func EnsureAll(db *mongo.Database) error {
	for _, ensure := range []func(*mongo.Database) error{
		EnsureCafeIndexes,
		EnsureReviewIndexes,
		EnsureLikeIndexes,
		EnsureUserIndexes,
		EnsureRefreshTokenIndexes,
	} {
		if err := ensure(db); err != nil {
			return err
		}
	}
	return nil
}

func EnsureCafeIndexes(db *mongo.Database) error {
	return createIndexes(db, "cafes", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "latitude", Value: 1}, {Key: "longitude", Value: 1}},
			Options: options.Index().SetName("lat_lng"),
		},
		{
			Keys:    bson.D{{Key: "rating", Value: -1}},
			Options: options.Index().SetName("rating_desc"),
		},
	})
}

func EnsureReviewIndexes(db *mongo.Database) error {
	return createIndexes(db, "reviews", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cafeId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("cafeId_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "cafeId", Value: 1}},
			Options: options.Index().SetName("userId_cafeId"),
		},
	})
}

func EnsureLikeIndexes(db *mongo.Database) error {
	return createIndexes(db, "likes", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "cafeId", Value: 1}},
			Options: options.Index().
				SetName("userId_cafeId_unique").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "cafeId", Value: 1}},
			Options: options.Index().SetName("cafeId_index"),
		},
	})
}

func EnsureUserIndexes(db *mongo.Database) error {
	return createIndexes(db, "users", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"email": bson.M{
						"$exists": true,
					},
				}),
		},
	})
}

func EnsureRefreshTokenIndexes(db *mongo.Database) error {
	return createIndexes(db, "refresh_tokens", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tokenHash", Value: 1}},
			Options: options.Index().
				SetName("tokenHash_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().
				SetName("expiresAt_ttl").
				SetExpireAfterSeconds(0),
		},
	})
}

func createIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("[DB] [INFO] ensuring %d index(es) on %s", len(models), collection)
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Printf("[DB] [ERROR] %s index error: %v", collection, err)
		return err
	}
	log.Printf("[DB] [INFO] %s indexes ready: %v", collection, names)
	return nil
}
