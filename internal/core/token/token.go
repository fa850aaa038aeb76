// Package token issues and verifies the HS256 bearer tokens used by the API.
// Tokens are stateless: nothing is persisted, and a token is valid exactly
// when its signature matches the configured secret and it has not expired.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when the caller passes a
// non-positive ttl.
const DefaultTTL = time.Hour

// ErrNoSecret indicates the signing secret is empty. This is a configuration
// fault and must be caught at startup, never per request.
var ErrNoSecret = errors.New("token: signing secret is empty")

// Verification failures. The access gate collapses all of these into one
// generic 401 for callers, but they stay distinct for logging and tests.
var (
	ErrMalformed        = errors.New("token: malformed")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrExpired          = errors.New("token: expired")
)

// Claims is the verified token payload exposed to callers.
type Claims struct {
	// Subject is the user identifier the token was issued for.
	Subject string
}

// Issue signs a token for subject, expiring ttl from now. Timestamps make
// consecutive tokens for the same subject distinct.
func Issue(subject, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates raw against secret. The signing algorithm is
// pinned to HS256; a token signed with anything else fails with
// ErrInvalidSignature.
func Verify(raw, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}

	return &Claims{Subject: claims.Subject}, nil
}

// classify maps golang-jwt parse errors onto this package's sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
}
