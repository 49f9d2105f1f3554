package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like pairs a user with a cafe; at most one per pair.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	CafeID    string             `bson:"cafeId" json:"cafeId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// LikedCafe is a liked cafe as listed on the profile page.
type LikedCafe struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Rating  *float64  `json:"rating,omitempty"`
	LikedAt time.Time `json:"likedAt"`
}
