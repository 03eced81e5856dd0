package admin

import "time"

type SessionInfo struct {
	ID          int64      `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedByIP string     `json:"created_by_ip,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Active      bool       `json:"active"`
	Rotated     bool       `json:"rotated"`
}
