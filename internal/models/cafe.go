package models

import (
	"time"
)

// Where an in-memory cafe came from. Never persisted.
const (
	SourceRepository = "repository"
	SourceLive       = "live"
	SourceFranchise  = "franchise"
)

// Cafe is the aggregate record for a single real-world place. Its ID is
// derived from (name, address) with CafeID.
type Cafe struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Address     string     `bson:"address" json:"address"`
	Latitude    *float64   `bson:"latitude" json:"lat"`
	Longitude   *float64   `bson:"longitude" json:"lng"`
	Rating      *float64   `bson:"rating" json:"rating"`
	ReviewCount int        `bson:"reviewCount" json:"reviewCount"`
	Images      StringList `bson:"images" json:"images"`
	Features    Features   `bson:"features" json:"features"`
	Comments    StringList `bson:"comments" json:"comments"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`

	FromRepository bool     `bson:"-" json:"fromRepository"`
	Source         string   `bson:"-" json:"source,omitempty"`
	Distance       float64  `bson:"-" json:"distance"`
	PlaceURL       string   `bson:"-" json:"placeUrl,omitempty"`
	Reviews        []Review `bson:"-" json:"reviews,omitempty"`
}

// HasCoordinates reports whether both coordinates are known.
func (c Cafe) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Key returns the dedup identity of the cafe.
func (c Cafe) Key() CafeKey {
	return NewCafeKey(c.Name, c.Address)
}

// CafeSummary is the projection used by the existence query and by
// profile listings.
type CafeSummary struct {
	ID      string   `bson:"_id" json:"id"`
	Name    string   `bson:"name" json:"name"`
	Address string   `bson:"address" json:"address"`
	Rating  *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}
