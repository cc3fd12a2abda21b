// Package token issues and verifies the stateless bearer credential. Tokens
// are HS256-signed, carry the admin's subject id and an expiry, and are never
// revoked server-side; they simply expire.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySubject = errors.New("token subject is required")

// Manager signs and verifies credentials against a process-wide secret and
// expiry window fixed at startup.
type Manager struct {
	secret    []byte
	expiresIn time.Duration
}

// NewManager builds a Manager. The expiry comes from configuration; it is the
// only place the token lifetime is decided.
func NewManager(secret string, expiresIn time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiresIn: expiresIn}
}

// ExpiresIn reports the configured token lifetime.
func (m *Manager) ExpiresIn() time.Duration { return m.expiresIn }

// Sign issues a signed token string for the given subject id.
func (m *Manager) Sign(subject string) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject id. jwt
// errors are passed through unwrapped-able so the error normalizer can tell
// an expired credential apart from a tampered one.
func (m *Manager) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
