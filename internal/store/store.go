// Package store persists cafes, reviews, likes, users and refresh tokens in
// MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	cafesCollection         = "cafes"
	reviewsCollection       = "reviews"
	likesCollection         = "likes"
	usersCollection         = "users"
	refreshTokensCollection = "refresh_tokens"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// Transactor runs fn inside a MongoDB transaction. The context passed to fn
// carries the session and must be used for every call that belongs to the
// transaction.
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(db *mongo.Database) *Transactor {
	return &Transactor{client: db.Client()}
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
