package models

import "time"

const (
	PlatformWeb    = "web"
	PlatformSocial = "social"
	PlatformGoogle = "google"
	PlatformKakao  = "kakao"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)

// User represents the application user account.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Nickname     string    `bson:"nickname" json:"nickname"`
	Platform     string    `bson:"platform" json:"platform"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}
