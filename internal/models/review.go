package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is immutable once written; only its author may delete it.
type Review struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CafeID              string             `bson:"cafeId" json:"cafeId"`
	UserID              string             `bson:"userId" json:"userId"`
	UserName            string             `bson:"userName" json:"userName"`
	Rating              int                `bson:"rating" json:"rating"`
	Comment             string             `bson:"comment" json:"comment"`
	Purpose             string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Features            Features           `bson:"features" json:"features"`
	Atmosphere          StringList         `bson:"atmosphere" json:"atmosphere"`
	VisitDate           string             `bson:"visitDate,omitempty" json:"visitDate,omitempty"`
	VisitTime           string             `bson:"visitTime,omitempty" json:"visitTime,omitempty"`
	StayDuration        string             `bson:"stayDuration,omitempty" json:"stayDuration,omitempty"`
	PriceSatisfaction   int                `bson:"priceSatisfaction,omitempty" json:"priceSatisfaction,omitempty"`
	OverallSatisfaction int                `bson:"overallSatisfaction,omitempty" json:"overallSatisfaction,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserReview is a review listed on its author's profile.
type UserReview struct {
	CafeID    string    `json:"cafeId"`
	CafeName  string    `json:"cafeName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
