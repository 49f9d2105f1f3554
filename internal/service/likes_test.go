package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jakca/internal/models"
)

func TestLikesAreIdempotent(t *testing.T) {
	mem := newMemoryStore()
	cafe := models.Cafe{ID: models.CafeID("Liked", "addr"), Name: "Liked", Address: "addr", Rating: ptr(4)}
	mem.cafes[cafe.ID] = cafe
	likes := NewLikes(mem, mem)

	status, err := likes.Like(context.Background(), activeSession, cafe.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1, IsLiked: true}, status)

	status, err = likes.Like(context.Background(), activeSession, cafe.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Count, "second like must not double count")

	anonymous, err := likes.Status(context.Background(), nil, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1}, anonymous)

	liked, err := likes.LikedCafes(context.Background(), activeSession)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "Liked", liked[0].Name)

	status, err = likes.Unlike(context.Background(), activeSession, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{}, status)
}

func TestLikeUnknownCafe(t *testing.T) {
	mem := newMemoryStore()
	likes := NewLikes(mem, mem)

	_, err := likes.Like(context.Background(), activeSession, "missing", nil)
	assert.ErrorIs(t, err, ErrCafeNotFound)

	_, err = likes.Like(context.Background(), nil, "missing", nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// the reference must derive the requested id
	_, err = likes.Like(context.Background(), activeSession, "missing", &CafeRef{Name: "Other", Address: "addr"})
	assert.ErrorIs(t, err, ErrCafeNotFound)
	assert.Empty(t, mem.cafes)
}

func TestLikeListedCafeCreatesRow(t *testing.T) {
	mem := newMemoryStore()
	likes := NewLikes(mem, mem)
	id := models.CafeID("스타벅스 역삼점", "서울 강남구 테헤란로 1")

	status, err := likes.Like(context.Background(), activeSession, id, &CafeRef{
		Name:    "스타벅스 역삼점",
		Address: "서울 강남구 테헤란로 1",
		Lat:     ptr(37.5),
		Lng:     ptr(127.03),
	})
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1, IsLiked: true}, status)

	stored, ok := mem.cafes[id]
	require.True(t, ok, "cafe row should be created")
	assert.Nil(t, stored.Rating)
	assert.Equal(t, 0, stored.ReviewCount)
}

func TestCafeDetail(t *testing.T) {
	mem := newMemoryStore()
	reviews := NewReviews(mem, mem, mem, nil, nil)
	_, err := reviews.Submit(context.Background(), activeSession, validInput())
	require.NoError(t, err)

	cafes := NewCafes(mem, mem)
	cafe, err := cafes.Detail(context.Background(), models.CafeID("Test Cafe", "123 Main St"))
	require.NoError(t, err)
	assert.Len(t, cafe.Reviews, 1)
	assert.True(t, cafe.FromRepository)

	_, err = cafes.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCafeNotFound)
}
