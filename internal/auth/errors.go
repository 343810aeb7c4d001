package auth

import "errors"

var (
	// ErrRejected indicates the supplied credentials do not match.
	ErrRejected = errors.New("invalid credentials")
	// ErrInvalidToken indicates a session token that failed verification.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrNotConfigured indicates a missing signing secret or credential.
	ErrNotConfigured = errors.New("authenticator not configured")
)
