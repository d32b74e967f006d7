// Package token issues and verifies the signed bearer tokens used as
// stateless credentials. A token binds a user ID to an expiry; nothing is
// stored server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned when a token fails verification for any reason:
// bad signature, malformed structure, or expiry.
var ErrInvalid = errors.New("token: invalid or expired")

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	// UserID is the authenticated user's ID.
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 access tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager. ttl is the token lifetime from issuance;
// a non-positive ttl defaults to one hour.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for the given user ID.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// user ID. All failure modes collapse to ErrInvalid.
func (m *Manager) Verify(tokenStr string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return "", ErrInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.UserID == "" {
		return "", ErrInvalid
	}
	return claims.UserID, nil
}
