package domain

import "time"

// RevokeReason records why a refresh token was revoked.
type RevokeReason string

const (
	// ReasonReplaced: the token was rotated out by a successful refresh.
	ReasonReplaced RevokeReason = "replaced_by_new_token"
	// ReasonAttemptedReuse: a revoked token was presented again, so the live
	// end of its rotation chain was killed as a theft precaution.
	ReasonAttemptedReuse RevokeReason = "attempted_reuse"
	// ReasonManual: explicit logout / revoke request.
	ReasonManual RevokeReason = "manual_revoke"
)

// RefreshToken stores refresh tokens for users.
//
// Security notes:
// - We never store the raw token in DB, only its SHA-256 hash (TokenHash).
// - On refresh we rotate tokens: the old token is revoked and points at its
//   replacement via ReplacedBy, forming a forward-linked chain.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	CreatedAt   time.Time `json:"created_at"`
	CreatedByIP string    `json:"created_by_ip,omitempty" gorm:"size:64"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index;not null"`

	RevokedAt   *time.Time   `json:"revoked_at,omitempty" gorm:"index"`
	RevokedByIP string       `json:"revoked_by_ip,omitempty" gorm:"size:64"`
	Reason      RevokeReason `json:"reason,omitempty" gorm:"size:40"`

	// ReplacedBy holds the TokenHash of the child token, set only when the
	// token was rotated. Nil for chain ends and manual revocations.
	ReplacedBy *string `json:"-" gorm:"size:64;index"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
