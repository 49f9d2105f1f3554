package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type featureHolder struct {
	Features Features `bson:"features"`
}

func decodeFeatures(t *testing.T, raw bson.M) Features {
	t.Helper()
	data, err := bson.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var holder featureHolder
	if err := bson.Unmarshal(data, &holder); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return holder.Features
}

func TestFeaturesDecodeObject(t *testing.T) {
	got := decodeFeatures(t, bson.M{"features": bson.M{
		"seats":      "6~10",
		"deskHeight": "high",
		"outlets":    "few",
		"wifi":       "excellent",
		"atmosphere": []string{"조용함", "넓음"},
	}})

	if got.Seats != SeatsSome || got.DeskHeight != DeskHigh || got.Outlets != OutletsFew || got.Wifi != WifiExcellent {
		t.Fatalf("unexpected features: %+v", got)
	}
	if len(got.Atmosphere) != 2 {
		t.Fatalf("expected 2 atmosphere tags, got %v", got.Atmosphere)
	}
}

func TestFeaturesDecodeArrayOfOneObject(t *testing.T) {
	got := decodeFeatures(t, bson.M{"features": bson.A{
		bson.M{"seats": "many", "wifi": "good", "atmosphere": "조용함, 밝음"},
	}})

	if got.Seats != SeatsMany || got.Wifi != WifiGood {
		t.Fatalf("unexpected features: %+v", got)
	}
	if len(got.Atmosphere) != 2 || got.Atmosphere[1] != "밝음" {
		t.Fatalf("expected comma separated atmosphere to split, got %v", got.Atmosphere)
	}
}

func TestFeaturesDecodeNumericSeatsAndUnknownValues(t *testing.T) {
	got := decodeFeatures(t, bson.M{"features": bson.M{
		"seats":      int32(45),
		"deskHeight": "floor",
		"wifi":       "blazing",
	}})

	if got.Seats != SeatsMany {
		t.Fatalf("expected 45 seats to bucket as many, got %q", got.Seats)
	}
	if got.DeskHeight != DeskUnknown || got.Wifi != WifiUnknown {
		t.Fatalf("expected unknown values to decode as unknown, got %+v", got)
	}
}

func TestFeaturesDecodeNull(t *testing.T) {
	got := decodeFeatures(t, bson.M{"features": nil})
	if !got.IsZero() {
		t.Fatalf("expected zero features, got %+v", got)
	}
}

func TestFeaturesRoundTripKeepsObjectShape(t *testing.T) {
	data, err := bson.Marshal(featureHolder{Features: Features{Seats: SeatsFew, Outlets: OutletsMany}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	raw := bson.Raw(data)
	if got := raw.Lookup("features").Type; got != bson.TypeEmbeddedDocument {
		t.Fatalf("expected features to be stored as a document, got %s", got)
	}
	if raw.Lookup("features", "seats").StringValue() != "1~5" || raw.Lookup("features", "outlets").StringValue() != "many" {
		t.Fatalf("unexpected stored features: %s", raw.Lookup("features"))
	}
}

func TestParseReviewFormAnswers(t *testing.T) {
	if ParseOutlets("있음") != OutletsMany || ParseOutlets("없음") != OutletsLimited {
		t.Fatal("expected yes/no outlet answers to map onto outlet levels")
	}
	if ParseWifi("있음") != WifiGood || ParseWifi("없음") != WifiAverage {
		t.Fatal("expected yes/no wifi answers to map onto wifi quality")
	}
	if ParseSeats("3") != SeatsFew || ParseSeats("0") != SeatsNone {
		t.Fatal("expected raw seat counts to bucket")
	}
}
