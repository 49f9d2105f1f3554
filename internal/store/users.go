package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"jakca/internal/models"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("email already registered")

type UserStore struct {
	users *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{users: db.Collection(usersCollection)}
}

func (s *UserStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateUserFields sets the given fields and bumps updatedAt. An empty
// field set is not written.
func (s *UserStore) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.users.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
