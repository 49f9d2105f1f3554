package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"jakca/internal/mocks"
	"jakca/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := newMemoryTokens()
	sessions := NewSessions(tokens, users, "test-secret", 20*time.Minute, 7*24*time.Hour)

	user := &models.User{ID: "user-1", Nickname: "tester", Status: models.StatusActive}
	users.EXPECT().FindUser(gomock.Any(), "user-1").Return(user, nil).AnyTimes()

	issued, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)
	assert.EqualValues(t, 1200, issued.ExpiresIn)

	session, err := sessions.Parse(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "tester", session.Nickname)
	assert.Equal(t, models.StatusActive, session.Status)

	rotated, _, err := sessions.Refresh(context.Background(), issued.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, issued.RefreshToken, rotated.RefreshToken)

	_, _, err = sessions.Refresh(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "rotated token cannot be reused")

	require.NoError(t, sessions.Revoke(context.Background(), rotated.RefreshToken))
	assert.ErrorIs(t, sessions.Revoke(context.Background(), rotated.RefreshToken), ErrInvalidRefreshToken)
}

func TestRefreshLosesRaceOnSameToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	mem := newMemoryTokens()
	sessions := NewSessions(racingTokens{mem}, users, "test-secret", time.Minute, time.Hour)

	user := &models.User{ID: "user-1", Status: models.StatusActive}
	users.EXPECT().FindUser(gomock.Any(), "user-1").Return(user, nil).AnyTimes()

	issued, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, mem.tokens, 1)

	_, _, err = sessions.Refresh(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Len(t, mem.tokens, 1, "no replacement token is stored for the losing refresh")
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	sessions := NewSessions(newMemoryTokens(), users, "test-secret", time.Minute, time.Hour)

	user := &models.User{ID: "user-1", Status: models.StatusActive}
	users.EXPECT().FindUser(gomock.Any(), "user-1").Return(user, nil).AnyTimes()

	issued, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	var wins int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := sessions.Refresh(context.Background(), issued.RefreshToken); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins)
}

func TestRefreshExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := newMemoryTokens()
	sessions := NewSessions(tokens, users, "test-secret", time.Minute, time.Hour)

	issued, err := sessions.Issue(context.Background(), &models.User{ID: "user-1", Status: models.StatusActive})
	require.NoError(t, err)

	sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, _, err = sessions.Refresh(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	sessions := NewSessions(newMemoryTokens(), nil, "test-secret", time.Minute, time.Hour)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(time.Minute).Unix(),
	})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = sessions.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()})
	signed, err = noUser.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = sessions.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	_, err = sessions.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}
