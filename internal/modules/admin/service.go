package admin

import (
	"context"
	"errors"
	"time"

	"collabhub/internal/domain"

	"gorm.io/gorm"
)

// TokenDirectory — read access to a user's refresh tokens
type TokenDirectory interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error)
	GetByReplacedBy(ctx context.Context, hash string) (*domain.RefreshToken, error)
}

// TokenRevoker is implemented by the auth service.
type TokenRevoker interface {
	RevokeAllForUser(ctx context.Context, userID int64, ip string) (int, error)
}

// Service exposes the admin view over user sessions.
type Service struct {
	tokens  TokenDirectory
	revoker TokenRevoker
	now     func() time.Time
}

func NewService(tokens TokenDirectory, revoker TokenRevoker) *Service {
	return &Service{tokens: tokens, revoker: revoker, now: time.Now}
}

// Sessions lists a user's refresh tokens with their lifecycle state. Rotated
// marks tokens that were minted by a refresh rather than a fresh login (their
// parent links to them via ReplacedBy).
func (s *Service) Sessions(ctx context.Context, userID int64) ([]SessionInfo, error) {
	tokens, err := s.tokens.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sessions := make([]SessionInfo, 0, len(tokens))
	for i := range tokens {
		t := &tokens[i]

		rotated := false
		if _, err := s.tokens.GetByReplacedBy(ctx, t.TokenHash); err == nil {
			rotated = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		sessions = append(sessions, SessionInfo{
			ID:          t.ID,
			CreatedAt:   t.CreatedAt,
			CreatedByIP: t.CreatedByIP,
			ExpiresAt:   t.ExpiresAt,
			RevokedAt:   t.RevokedAt,
			Reason:      string(t.Reason),
			Active:      t.IsActive(now),
			Rotated:     rotated,
		})
	}
	return sessions, nil
}

func (s *Service) RevokeAll(ctx context.Context, userID int64, ip string) (int, error) {
	return s.revoker.RevokeAllForUser(ctx, userID, ip)
}
