package places

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingSearcher struct {
	categoryCalls int
	err           error
}

func (s *countingSearcher) SearchKeyword(ctx context.Context, q KeywordQuery) ([]Place, error) {
	return nil, nil
}

func (s *countingSearcher) SearchCategory(ctx context.Context, q CategoryQuery) ([]Place, error) {
	s.categoryCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []Place{{ID: "1", Name: "Cafe", Lat: q.Lat, Lng: q.Lng}}, nil
}

func TestMemoServesRepeatedCoordinateFromMemory(t *testing.T) {
	inner := &countingSearcher{}
	memo := NewMemo(inner, time.Minute)
	hits, misses := 0, 0
	memo.Observe(func() { hits++ }, func() { misses++ })

	q := CategoryQuery{Category: CafeCategory, Lat: 37.50171, Lng: 127.02691, Radius: 1500, Size: 15}
	for i := 0; i < 3; i++ {
		if _, err := memo.SearchCategory(context.Background(), q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.categoryCalls != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.categoryCalls)
	}
	if hits != 2 || misses != 1 {
		t.Fatalf("expected 2 hits and 1 miss, got %d/%d", hits, misses)
	}

	// differs only past the fourth decimal
	near := q
	near.Lat = 37.50174
	if _, err := memo.SearchCategory(context.Background(), near); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.categoryCalls != 1 {
		t.Fatalf("expected rounded key to hit, got %d calls", inner.categoryCalls)
	}
}

func TestMemoExpiresOnRead(t *testing.T) {
	inner := &countingSearcher{}
	memo := NewMemo(inner, 20*time.Millisecond)
	q := CategoryQuery{Lat: 37.5, Lng: 127.0}

	_, _ = memo.SearchCategory(context.Background(), q)
	time.Sleep(40 * time.Millisecond)
	_, _ = memo.SearchCategory(context.Background(), q)

	if inner.categoryCalls != 2 {
		t.Fatalf("expected expired entry to be refetched, got %d calls", inner.categoryCalls)
	}
}

func TestMemoReleasesExpiredEntries(t *testing.T) {
	inner := &countingSearcher{}
	memo := NewMemo(inner, 10*time.Millisecond)

	for i := 0; i < 1000; i++ {
		q := CategoryQuery{Lat: 37.0 + float64(i)*0.001, Lng: 127.0}
		if _, err := memo.SearchCategory(context.Background(), q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if memo.Len() != 1000 {
		t.Fatalf("expected 1000 entries, got %d", memo.Len())
	}

	deadline := time.Now().Add(time.Second)
	for memo.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if memo.Len() != 0 {
		t.Fatalf("expired entries still held: %d", memo.Len())
	}
}

func TestMemoDoesNotRememberFailures(t *testing.T) {
	inner := &countingSearcher{err: errors.New("boom")}
	memo := NewMemo(inner, time.Minute)
	q := CategoryQuery{Lat: 37.5, Lng: 127.0}

	if _, err := memo.SearchCategory(context.Background(), q); err == nil {
		t.Fatalf("expected error")
	}
	inner.err = nil
	if _, err := memo.SearchCategory(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.categoryCalls != 2 {
		t.Fatalf("expected failure not to be memoized, got %d calls", inner.categoryCalls)
	}
}

func TestLocalityFromAddress(t *testing.T) {
	cases := map[string]string{
		"":                  "내 위치",
		"서울 강남구 역삼동 123-4": "강남구 역삼동",
		"강남구 역삼동":           "강남구 역삼동",
	}
	for in, want := range cases {
		if got := LocalityFromAddress(in); got != want {
			t.Fatalf("LocalityFromAddress(%q) = %q, want %q", in, got, want)
		}
	}
}
