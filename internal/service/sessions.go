package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jakca/internal/models"
	"jakca/internal/store"
)

// Tokens is the credential pair handed to the client after sign-in.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Sessions issues, refreshes and revokes sign-in sessions. Access tokens
// are HS256 JWTs; refresh tokens are random strings stored hashed.
type Sessions struct {
	tokens     TokenRepository
	users      UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewSessions(tokens TokenRepository, users UserRepository, secret string, accessTTL, refreshTTL time.Duration) *Sessions {
	return &Sessions{
		tokens:     tokens,
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue starts a session for user.
func (s *Sessions) Issue(ctx context.Context, user *models.User) (*Tokens, error) {
	tokens, _, err := s.issue(ctx, user)
	return tokens, err
}

// Refresh rotates a refresh token. The old token is revoked and linked to
// its replacement before the replacement is stored; when two refreshes race
// on one token only the first to revoke it gets new tokens.
func (s *Sessions) Refresh(ctx context.Context, plain string) (*Tokens, *models.User, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nil, nil, ErrInvalidRefreshToken
	}

	token, err := s.tokens.FindActiveRefreshToken(ctx, hashToken(plain))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, nil, err
	}
	if s.now().After(token.ExpiresAt) {
		_ = s.tokens.RevokeRefreshToken(ctx, token.ID, nil)
		return nil, nil, ErrExpiredRefreshToken
	}

	user, err := s.users.FindUser(ctx, token.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, ErrInactiveUser
	}

	replacementID := primitive.NewObjectID()
	err = s.tokens.RevokeRefreshToken(ctx, token.ID, &replacementID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, nil, err
	}
	tokens, _, err := s.issueWithID(ctx, user, replacementID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// Revoke ends the session that owns the refresh token.
func (s *Sessions) Revoke(ctx context.Context, plain string) error {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return ErrInvalidRefreshToken
	}
	ok, err := s.tokens.RevokeByHash(ctx, hashToken(plain))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidRefreshToken
	}
	return nil
}

// Parse validates an access token and returns the session it carries.
func (s *Sessions) Parse(raw string) (*Session, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidAccessToken
	}
	userID, _ := claims["userId"].(string)
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidAccessToken
	}
	status, _ := claims["status"].(string)
	nickname, _ := claims["nickname"].(string)
	return &Session{UserID: userID, Status: status, Nickname: nickname}, nil
}

func (s *Sessions) issue(ctx context.Context, user *models.User) (*Tokens, *models.RefreshToken, error) {
	return s.issueWithID(ctx, user, primitive.NewObjectID())
}

func (s *Sessions) issueWithID(ctx context.Context, user *models.User, id primitive.ObjectID) (*Tokens, *models.RefreshToken, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"userId":   user.ID,
		"status":   user.Status,
		"nickname": user.Nickname,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}

	plain, err := generateRefreshString()
	if err != nil {
		return nil, nil, err
	}
	refresh := &models.RefreshToken{
		ID:        id,
		UserID:    user.ID,
		TokenHash: hashToken(plain),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.tokens.InsertRefreshToken(ctx, refresh); err != nil {
		return nil, nil, err
	}

	return &Tokens{
		AccessToken:  access,
		RefreshToken: plain,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, refresh, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
