package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jakca/internal/models"
)

// TokenStore keeps hashed refresh tokens.
type TokenStore struct {
	tokens *mongo.Collection
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{tokens: db.Collection(refreshTokensCollection)}
}

func (s *TokenStore) InsertRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	if _, err := s.tokens.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// FindActiveRefreshToken looks up a token that has not been revoked.
func (s *TokenStore) FindActiveRefreshToken(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.tokens.FindOne(ctx, bson.M{"tokenHash": hash, "revoked": false}).Decode(&token)
	if err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

// RevokeRefreshToken revokes the token if it is still active, optionally
// linking the token that replaced it. An already revoked token yields
// ErrNotFound, so only one rotation of a token can win.
func (s *TokenStore) RevokeRefreshToken(ctx context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error {
	set := bson.M{"revoked": true, "revokedAt": time.Now()}
	if replacedBy != nil {
		set["replacedByToken"] = *replacedBy
	}
	res, err := s.tokens.UpdateOne(ctx, bson.M{"_id": id, "revoked": false}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RevokeByHash revokes an active token and reports whether one matched.
func (s *TokenStore) RevokeByHash(ctx context.Context, hash string) (bool, error) {
	res, err := s.tokens.UpdateOne(ctx,
		bson.M{"tokenHash": hash, "revoked": false},
		bson.M{"$set": bson.M{"revoked": true, "revokedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("revoke refresh token: %w", err)
	}
	return res.MatchedCount > 0, nil
}
