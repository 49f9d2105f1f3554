package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jakca/internal/models"
	"jakca/internal/store"
)

const (
	placeholderEmailDomain = "social.local"
	defaultNickname        = "사용자"
)

// ProviderIdentity is what an identity provider told us about the user who
// just signed in. Metadata holds optional profile fields such as full_name,
// name, nickname and display_name.
type ProviderIdentity struct {
	Provider string
	Subject  string
	Email    string
	Metadata map[string]string
}

type Accounts struct {
	users       UserRepository
	allowSignup bool
	now         func() time.Time
}

func NewAccounts(users UserRepository, allowSignup bool) *Accounts {
	return &Accounts{users: users, allowSignup: allowSignup, now: time.Now}
}

// Reconcile creates the local user on first sign-in and afterwards updates
// only fields that changed and are non-empty. A first sign-in whose email
// already belongs to an account is linked to that account. Repeating it with
// the same identity writes nothing.
func (a *Accounts) Reconcile(ctx context.Context, identity ProviderIdentity) (*models.User, error) {
	if strings.TrimSpace(identity.Subject) == "" {
		return nil, fmt.Errorf("%w: provider subject is empty", ErrInvalidCredentials)
	}
	userID := models.UserID(identity.Provider, identity.Subject)
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	platform := platformFor(identity.Provider)

	existing, err := a.users.FindUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		existing, err = a.linkByEmail(ctx, email)
	}
	if errors.Is(err, store.ErrNotFound) {
		now := a.now()
		user := &models.User{
			ID:        userID,
			Email:     email,
			Nickname:  nicknameFor(identity.Metadata, email),
			Platform:  platform,
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if user.Email == "" {
			user.Email = userID + "@" + placeholderEmailDomain
		}
		err = a.users.CreateUser(ctx, user)
		if err == nil {
			log.Printf("[AUTH] [INFO] user created via %s: %s", platform, userID)
			return user, nil
		}
		if !errors.Is(err, store.ErrEmailTaken) {
			log.Println("[AUTH] [ERROR] user create failed:", err)
			return nil, fmt.Errorf("create user: %w", err)
		}
		// another sign-in with the same email won the insert
		existing, err = a.linkByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	changes := map[string]interface{}{}
	if email != "" && email != existing.Email {
		changes["email"] = email
		existing.Email = email
	}
	if nickname := metadataNickname(identity.Metadata); nickname != "" && nickname != existing.Nickname {
		changes["nickname"] = nickname
		existing.Nickname = nickname
	}
	if platform != existing.Platform {
		changes["platform"] = platform
		existing.Platform = platform
	}
	if len(changes) == 0 {
		return existing, nil
	}

	if err := a.users.UpdateUserFields(ctx, existing.ID, changes); err != nil {
		log.Println("[AUTH] [ERROR] user update failed:", err)
		return nil, fmt.Errorf("update user: %w", err)
	}
	existing.UpdatedAt = a.now()
	log.Printf("[AUTH] [INFO] user %s updated %d field(s)", existing.ID, len(changes))
	return existing, nil
}

// linkByEmail finds the account that already owns email so a sign-in
// through another provider lands on the same user. An empty email never
// links.
func (a *Accounts) linkByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, store.ErrNotFound
	}
	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTH] [INFO] linking sign-in for %s to existing user %s", email, user.ID)
	return user, nil
}

// Authenticate checks an email and password against a web account.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// Register creates a web account. It is refused unless password sign-up
// is enabled.
func (a *Accounts) Register(ctx context.Context, email, password, nickname string) (*models.User, error) {
	if !a.allowSignup {
		return nil, ErrSignupDisabled
	}
	email = strings.ToLower(strings.TrimSpace(email))
	nickname = strings.TrimSpace(nickname)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	_, err := a.users.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if nickname == "" {
		nickname = nicknameFor(nil, email)
	}

	now := a.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     nickname,
		Platform:     models.PlatformWeb,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Println("[AUTH] [INFO] web user registered:", email)
	return user, nil
}

// Profile returns the caller's stored account.
func (a *Accounts) Profile(ctx context.Context, session *Session) (*models.User, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	user, err := a.users.FindUser(ctx, session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	return user, err
}

func platformFor(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case models.PlatformGoogle:
		return models.PlatformGoogle
	case models.PlatformKakao:
		return models.PlatformKakao
	}
	return models.PlatformSocial
}

func metadataNickname(metadata map[string]string) string {
	for _, key := range []string{"full_name", "name", "nickname", "display_name"} {
		if v := strings.TrimSpace(metadata[key]); v != "" {
			return v
		}
	}
	return ""
}

func nicknameFor(metadata map[string]string, email string) string {
	if nickname := metadataNickname(metadata); nickname != "" {
		return nickname
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return defaultNickname
}
