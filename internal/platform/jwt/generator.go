package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the validity window of a session token.
const DefaultExpiration = time.Hour

// ErrInvalidToken is returned when a token fails signature, algorithm or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// ErrEmptySecret is returned when the Manager has no signing key.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Manager signs and verifies HS256 session tokens.
// The only identity claim is "sub", the user ID.
type Manager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewManager creates a Manager with the provided secret and expiration duration.
// A non-positive expiration falls back to DefaultExpiration.
func NewManager(secret string, expiration time.Duration) *Manager {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &Manager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token with standard claims.
func (m *Manager) GenerateToken(userID string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrEmptySecret
	}
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and expiry of tokenStr and returns its subject.
// A Manager without a secret rejects every token.
func (m *Manager) ParseToken(tokenStr string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, ErrEmptySecret)
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; this also rejects "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
