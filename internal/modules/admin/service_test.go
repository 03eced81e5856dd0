package admin

import (
	"context"
	"testing"
	"time"

	"collabhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTokenDirectory struct {
	mock.Mock
}

func (m *mockTokenDirectory) ListByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RefreshToken), args.Error(1)
}

func (m *mockTokenDirectory) GetByReplacedBy(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

type mockTokenRevoker struct {
	mock.Mock
}

func (m *mockTokenRevoker) RevokeAllForUser(ctx context.Context, userID int64, ip string) (int, error) {
	args := m.Called(ctx, userID, ip)
	return args.Int(0), args.Error(1)
}

func TestService_Sessions(t *testing.T) {
	dir := new(mockTokenDirectory)
	revoker := new(mockTokenRevoker)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	revokedAt := now.Add(-time.Hour)

	// h1 was rotated into h2: h1 is revoked, h2 is the live session
	h2 := "hash-2"
	tokens := []domain.RefreshToken{
		{
			ID: 1, UserID: 125, TokenHash: "hash-1",
			CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(24 * time.Hour),
			RevokedAt: &revokedAt, Reason: domain.ReasonReplaced, ReplacedBy: &h2,
		},
		{
			ID: 2, UserID: 125, TokenHash: h2,
			CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(24 * time.Hour),
		},
	}

	dir.On("ListByUser", mock.Anything, int64(125)).Return(tokens, nil)
	dir.On("GetByReplacedBy", mock.Anything, "hash-1").Return(nil, gorm.ErrRecordNotFound)
	dir.On("GetByReplacedBy", mock.Anything, h2).Return(&tokens[0], nil)

	service := NewService(dir, revoker)
	service.now = func() time.Time { return now }

	sessions, err := service.Sessions(context.Background(), 125)

	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.False(t, sessions[0].Active)
	assert.False(t, sessions[0].Rotated)
	assert.Equal(t, string(domain.ReasonReplaced), sessions[0].Reason)

	assert.True(t, sessions[1].Active)
	assert.True(t, sessions[1].Rotated)
}

func TestService_RevokeAll(t *testing.T) {
	dir := new(mockTokenDirectory)
	revoker := new(mockTokenRevoker)

	revoker.On("RevokeAllForUser", mock.Anything, int64(125), "10.0.0.1").Return(3, nil)

	service := NewService(dir, revoker)

	revoked, err := service.RevokeAll(context.Background(), 125, "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, 3, revoked)
	revoker.AssertExpectations(t)
}
