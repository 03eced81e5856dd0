package auth

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewRefreshToken_Entropy(t *testing.T) {
	tokenRepo := new(mockTokenRepo)
	tokenRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(new(mockUserRepo), tokenRepo, new(mockJWTService))

	raw, token, err := service.newRefreshToken(context.Background(), 125, "10.0.0.1")
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Len(t, decoded, refreshTokenBytes)

	assert.Equal(t, hashTokenWithPepper(raw, testPepper), token.TokenHash)
	assert.Equal(t, testNow, token.CreatedAt)
	assert.Equal(t, testNow.Add(7*24*time.Hour), token.ExpiresAt)
	assert.Equal(t, "10.0.0.1", token.CreatedByIP)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	tokenRepo := new(mockTokenRepo)
	tokenRepo.On("GetByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(new(mockUserRepo), tokenRepo, new(mockJWTService))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		raw, _, err := service.newRefreshToken(context.Background(), 125, "")
		require.NoError(t, err)
		require.False(t, seen[raw], "generator produced a duplicate token")
		seen[raw] = true
	}
}

func TestHashTokenWithPepper(t *testing.T) {
	h1 := hashTokenWithPepper("raw", "pepper-a")
	h2 := hashTokenWithPepper("raw", "pepper-a")
	h3 := hashTokenWithPepper("raw", "pepper-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // hex sha256
}
