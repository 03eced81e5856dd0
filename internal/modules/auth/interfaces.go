package auth

import (
	"context"
	"time"

	"collabhub/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface — storage for refresh tokens
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	GetByReplacedBy(ctx context.Context, hash string) (*domain.RefreshToken, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error)
	Update(ctx context.Context, t *domain.RefreshToken) error
	DeleteMany(ctx context.Context, ids []int64) error
	DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error)
}

type jwtService interface {
	GenerateToken(userID int64, name, email, role string) (string, error)
}
