// Package auth checks the configured login and issues signed session tokens.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "timesheets"

// DefaultTTL is the session lifetime used when Config.TTL is not positive.
const DefaultTTL = 24 * time.Hour

// User is the profile returned on a successful login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Config holds the single accepted credential pair and the token settings.
type Config struct {
	UserID   string
	Email    string
	Password string
	Name     string
	Secret   string
	TTL      time.Duration
}

// Authenticator validates credentials and session tokens.
type Authenticator struct {
	user     User
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// New creates an Authenticator. now may be nil.
func New(cfg Config, now func() time.Time) (*Authenticator, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("%w: secret is required", ErrNotConfigured)
	}
	if cfg.Email == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrNotConfigured)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Authenticator{
		user:     User{ID: cfg.UserID, Email: cfg.Email, Name: cfg.Name},
		password: cfg.Password,
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		now:      now,
	}, nil
}

// Authorize checks identity and secret against the configured login and returns a signed
// session token with the user profile.
func (a *Authenticator) Authorize(identity, secret string) (string, User, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(identity), []byte(a.user.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(secret), []byte(a.password)) == 1
	if !emailOK || !passwordOK {
		return "", User{}, ErrRejected
	}

	now := a.now()
	claims := sessionClaims{
		Email: a.user.Email,
		Name:  a.user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   a.user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", User{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, a.user, nil
}

// ResolveIdentity verifies a session token and returns the email it was issued to.
func (a *Authenticator) ResolveIdentity(_ context.Context, token string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}
	if claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
