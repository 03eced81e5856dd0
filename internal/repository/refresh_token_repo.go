package repository

import (
	"context"
	"time"

	"collabhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByReplacedBy finds the parent of a rotated token, i.e. the token whose
// ReplacedBy link points at the given hash.
func (r *RefreshTokenRepository) GetByReplacedBy(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("replaced_by = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) ListByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Update persists revocation stamps on an existing token row.
func (r *RefreshTokenRepository) Update(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Model(t).Updates(map[string]any{
		"revoked_at":    t.RevokedAt,
		"revoked_by_ip": t.RevokedByIP,
		"reason":        t.Reason,
		"replaced_by":   t.ReplacedBy,
	}).Error
}

func (r *RefreshTokenRepository) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.RefreshToken{}).Error
}

// DeleteStale bulk-removes tokens that are inactive (revoked or expired) and
// older than the retention window. Active tokens are never touched.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	cutoff := now.Add(-retention)
	res := r.db.WithContext(ctx).
		Where("created_at <= ? AND (revoked_at IS NOT NULL OR expires_at <= ?)", cutoff, now).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
