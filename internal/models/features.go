package models

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// SeatBucket is the rough number of seats suitable for working.
type SeatBucket string

const (
	SeatsNone    SeatBucket = "none"
	SeatsFew     SeatBucket = "1~5"
	SeatsSome    SeatBucket = "6~10"
	SeatsMany    SeatBucket = "many"
	SeatsUnknown SeatBucket = ""
)

type DeskHeight string

const (
	DeskHigh    DeskHeight = "high"
	DeskLow     DeskHeight = "low"
	DeskMixed   DeskHeight = "mixed"
	DeskUnknown DeskHeight = ""
)

type OutletLevel string

const (
	OutletsMany    OutletLevel = "many"
	OutletsFew     OutletLevel = "few"
	OutletsLimited OutletLevel = "limited"
	OutletsUnknown OutletLevel = ""
)

type WifiQuality string

const (
	WifiExcellent WifiQuality = "excellent"
	WifiGood      WifiQuality = "good"
	WifiAverage   WifiQuality = "average"
	WifiUnknown   WifiQuality = ""
)

// Features is the normalized feature bag shared by cafes and review snapshots.
type Features struct {
	Seats      SeatBucket  `json:"seats"`
	DeskHeight DeskHeight  `json:"deskHeight"`
	Outlets    OutletLevel `json:"outlets"`
	Wifi       WifiQuality `json:"wifi"`
	Atmosphere StringList  `json:"atmosphere"`
}

// IsZero reports whether no feature has been recorded.
func (f Features) IsZero() bool {
	return f.Seats == SeatsUnknown &&
		f.DeskHeight == DeskUnknown &&
		f.Outlets == OutletsUnknown &&
		f.Wifi == WifiUnknown &&
		len(f.Atmosphere) == 0
}

// ParseSeats maps stored or submitted values onto a bucket. Raw seat counts
// from older rows are bucketed.
func ParseSeats(value string) SeatBucket {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "none", "0", "없음":
		return SeatsNone
	case "1~5", "1-5":
		return SeatsFew
	case "6~10", "6-10":
		return SeatsSome
	case "many", "많음":
		return SeatsMany
	}
	if n, err := strconv.Atoi(v); err == nil {
		return seatsFromCount(n)
	}
	return SeatsUnknown
}

func seatsFromCount(n int) SeatBucket {
	switch {
	case n <= 0:
		return SeatsNone
	case n <= 5:
		return SeatsFew
	case n <= 10:
		return SeatsSome
	default:
		return SeatsMany
	}
}

func ParseDeskHeight(value string) DeskHeight {
	switch DeskHeight(strings.ToLower(strings.TrimSpace(value))) {
	case DeskHigh:
		return DeskHigh
	case DeskLow:
		return DeskLow
	case DeskMixed:
		return DeskMixed
	}
	return DeskUnknown
}

// ParseOutlets also accepts the yes/no answers of the review form.
func ParseOutlets(value string) OutletLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "many", "있음", "yes":
		return OutletsMany
	case "few":
		return OutletsFew
	case "limited", "없음", "no":
		return OutletsLimited
	}
	return OutletsUnknown
}

// ParseWifi also accepts the yes/no answers of the review form.
func ParseWifi(value string) WifiQuality {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "excellent":
		return WifiExcellent
	case "good", "있음", "yes":
		return WifiGood
	case "average", "없음", "no":
		return WifiAverage
	}
	return WifiUnknown
}

// featuresDocument is the persisted shape. Seats stays raw because older rows
// stored a number.
type featuresDocument struct {
	Seats      bson.RawValue `bson:"seats,omitempty"`
	DeskHeight string        `bson:"deskHeight,omitempty"`
	Outlets    string        `bson:"outlets,omitempty"`
	Wifi       string        `bson:"wifi,omitempty"`
	Atmosphere StringList    `bson:"atmosphere,omitempty"`
}

// UnmarshalBSONValue accepts an embedded document, an array wrapping one
// document, or null. Unknown enum values decode as unknown instead of failing.
func (f *Features) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = Features{}
		return nil
	case bsontype.Array:
		var items []bson.RawValue
		if err := bson.UnmarshalValue(t, data, &items); err != nil {
			return err
		}
		for _, item := range items {
			if item.Type == bsontype.EmbeddedDocument {
				return f.UnmarshalBSONValue(item.Type, item.Value)
			}
		}
		*f = Features{}
		return nil
	case bsontype.EmbeddedDocument:
		var doc featuresDocument
		if err := bson.Unmarshal(data, &doc); err != nil {
			return err
		}
		*f = Features{
			Seats:      seatsFromRaw(doc.Seats),
			DeskHeight: ParseDeskHeight(doc.DeskHeight),
			Outlets:    ParseOutlets(doc.Outlets),
			Wifi:       ParseWifi(doc.Wifi),
			Atmosphere: doc.Atmosphere,
		}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Features", t)
	}
}

// MarshalBSONValue always writes the object shape.
func (f Features) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(bson.M{
		"seats":      string(f.Seats),
		"deskHeight": string(f.DeskHeight),
		"outlets":    string(f.Outlets),
		"wifi":       string(f.Wifi),
		"atmosphere": f.Atmosphere,
	})
}

func seatsFromRaw(raw bson.RawValue) SeatBucket {
	switch raw.Type {
	case bsontype.String:
		return ParseSeats(raw.StringValue())
	case bsontype.Int32:
		return seatsFromCount(int(raw.Int32()))
	case bsontype.Int64:
		return seatsFromCount(int(raw.Int64()))
	case bsontype.Double:
		return seatsFromCount(int(raw.Double()))
	}
	return SeatsUnknown
}
