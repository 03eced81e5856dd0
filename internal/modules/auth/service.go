package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"collabhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication and the refresh
// token lifecycle: issuance at login, rotation on refresh, reuse detection,
// manual revocation and stale-token pruning.
type Service struct {
	users  UserRepositoryInterface
	tokens RefreshTokenRepositoryInterface
	jwt    jwtService

	pepper     string
	refreshTTL time.Duration
	retention  time.Duration

	// now is swappable in tests
	now func() time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	jwt jwtService,
	pepper string,
	refreshTTL time.Duration,
	retention time.Duration,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		pepper:     pepper,
		refreshTTL: refreshTTL,
		retention:  retention,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user, ip)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, Tokens: *pair}, nil
}

// issueTokens creates a fresh refresh token for the user, prunes stale ones
// and mints an access token. Used at login; rotation goes through Refresh.
func (s *Service) issueTokens(ctx context.Context, user *domain.User, ip string) (*TokenPair, error) {
	raw, token, err := s.newRefreshToken(ctx, user.ID, ip)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	if err := s.pruneStale(ctx, user.ID); err != nil {
		return nil, err
	}

	access, err := s.jwt.GenerateToken(user.ID, user.Name, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: raw}, nil
}

// Refresh rotates a presented refresh token into a new access/refresh pair.
//
// A token that is already revoked signals replay of a rotated-out token: the
// live descendant of its chain is revoked before the call is rejected.
func (s *Service) Refresh(ctx context.Context, refreshRaw, ip string) (*TokenPair, error) {
	hash := hashTokenWithPepper(refreshRaw, s.pepper)
	current, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if current.IsRevoked() {
		if err := s.revokeDescendants(ctx, current, ip, domain.ReasonAttemptedReuse); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}
	if !current.IsActive(s.now()) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	raw, next, err := s.newRefreshToken(ctx, current.UserID, ip)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, next); err != nil {
		return nil, err
	}
	if err := s.revoke(ctx, current, ip, domain.ReasonReplaced, &next.TokenHash); err != nil {
		return nil, err
	}
	if err := s.pruneStale(ctx, current.UserID); err != nil {
		return nil, err
	}

	access, err := s.jwt.GenerateToken(user.ID, user.Name, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: raw}, nil
}

// Revoke handles an explicit logout / revoke-by-request of a single token.
func (s *Service) Revoke(ctx context.Context, refreshRaw, ip string) error {
	hash := hashTokenWithPepper(refreshRaw, s.pepper)
	token, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return err
	}
	if !token.IsActive(s.now()) {
		return ErrInvalidRefreshToken
	}
	return s.revoke(ctx, token, ip, domain.ReasonManual, nil)
}

// RevokeAllForUser manually revokes every active token of a user. Used by the
// admin surface. Returns the number of tokens revoked.
func (s *Service) RevokeAllForUser(ctx context.Context, userID int64, ip string) (int, error) {
	tokens, err := s.tokens.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	revoked := 0
	for i := range tokens {
		t := &tokens[i]
		if !t.IsActive(now) {
			continue
		}
		if err := s.revoke(ctx, t, ip, domain.ReasonManual, nil); err != nil {
			return revoked, err
		}
		revoked++
	}
	return revoked, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
