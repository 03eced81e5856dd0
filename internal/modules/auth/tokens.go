package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"collabhub/internal/domain"

	"gorm.io/gorm"
)

// refreshTokenBytes gives ~64 base64 characters of entropy per token.
const refreshTokenBytes = 48

// maxChainWalk bounds the descendant walk. A user would need this many
// rotations on a single chain before any of it could matter.
const maxChainWalk = 10000

// newRefreshToken generates an opaque refresh token and its store row. The
// raw value goes to the client; only the peppered hash is persisted. A hash
// collision means the generator or store is broken, so it is reported as
// ErrTokenAlreadyExists instead of being retried.
func (s *Service) newRefreshToken(ctx context.Context, userID int64, ip string) (string, *domain.RefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	hash := hashTokenWithPepper(raw, s.pepper)

	if _, err := s.tokens.GetByHash(ctx, hash); err == nil {
		return "", nil, ErrTokenAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	now := s.now()
	token := &domain.RefreshToken{
		UserID:      userID,
		TokenHash:   hash,
		CreatedAt:   now,
		CreatedByIP: ip,
		ExpiresAt:   now.Add(s.refreshTTL),
	}
	return raw, token, nil
}

// revoke stamps revocation metadata on a token and persists it. Callers must
// check IsActive first: stamping an already-revoked token overwrites its
// audit fields.
func (s *Service) revoke(ctx context.Context, t *domain.RefreshToken, ip string, reason domain.RevokeReason, replacedBy *string) error {
	now := s.now()
	t.RevokedAt = &now
	t.RevokedByIP = ip
	t.Reason = reason
	t.ReplacedBy = replacedBy
	return s.tokens.Update(ctx, t)
}

// revokeDescendants walks the ReplacedBy chain forward from a token that was
// presented after being revoked and kills the live end of the chain. A
// legitimate client always holds the newest token, so replay of an old one
// means the whole remaining chain is suspect.
//
// A dangling ReplacedBy link (child already pruned) ends the walk silently.
// A cycle cannot be produced by rotation and is reported as an integrity
// error.
func (s *Service) revokeDescendants(ctx context.Context, t *domain.RefreshToken, ip string, reason domain.RevokeReason) error {
	visited := map[string]struct{}{t.TokenHash: {}}

	current := t
	for steps := 0; current.ReplacedBy != nil && *current.ReplacedBy != ""; steps++ {
		if steps >= maxChainWalk {
			return fmt.Errorf("refresh token chain for user %d exceeds %d links", t.UserID, maxChainWalk)
		}
		next := *current.ReplacedBy
		if _, seen := visited[next]; seen {
			return fmt.Errorf("refresh token chain cycle detected for user %d", t.UserID)
		}

		child, err := s.tokens.GetByHash(ctx, next)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The pruner may have deleted old chain links; treat as terminus.
			return nil
		}
		if err != nil {
			return err
		}
		visited[child.TokenHash] = struct{}{}

		if child.IsActive(s.now()) {
			return s.revoke(ctx, child, ip, reason, nil)
		}
		current = child
	}
	return nil
}

// pruneStale deletes the user's tokens that are both inactive and older than
// the retention window. Active tokens are kept regardless of age.
func (s *Service) pruneStale(ctx context.Context, userID int64) error {
	tokens, err := s.tokens.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	var stale []int64
	for i := range tokens {
		t := &tokens[i]
		if !t.IsActive(now) && !t.CreatedAt.Add(s.retention).After(now) {
			stale = append(stale, t.ID)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return s.tokens.DeleteMany(ctx, stale)
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
