package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_Lifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, token.IsActive(now))

	// expiry boundary is inclusive: now >= ExpiresAt means expired
	assert.True(t, token.IsExpired(token.ExpiresAt))
	assert.False(t, token.IsActive(token.ExpiresAt))

	revokedAt := now
	token.RevokedAt = &revokedAt
	assert.True(t, token.IsRevoked())
	assert.False(t, token.IsActive(now))
}
