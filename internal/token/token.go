package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidOrExpired covers malformed, badly signed and expired tokens.
	// The caller is never told which, to avoid leaking why a token failed.
	ErrInvalidOrExpired = errors.New("invalid or expired token")

	// ErrMissingSubject indicates a well-signed token without a subject claim.
	ErrMissingSubject = errors.New("token has no subject")
)

// Issuer creates and verifies HS256 bearer tokens bound to one account email.
// The signing secret is process-wide; rotating it invalidates every
// outstanding token.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an issuer signing with secret; tokens expire after ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token with subject email expiring at now + ttl.
func (i *Issuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the signature and expiry and returns the subject email.
// No identity-store lookup happens here: a token stays usable until expiry
// regardless of later account state.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidOrExpired
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
