package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrTokenNotFound: the presented refresh token does not exist in the store.
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrInvalidRefreshToken: the token exists but is revoked or expired. The
	// caller is told no more than "invalid session".
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrTokenAlreadyExists: the generator produced a value already present in
	// the store. Practically unreachable; signals a generator or store defect.
	ErrTokenAlreadyExists = errors.New("refresh token already exists")
)
