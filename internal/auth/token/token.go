// Package token issues and verifies the HS256 bearer tokens handed out at login.
package token

import (
	"errors"
	"strings"
	"time"

	authdomain "todo-backend/internal/auth/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs and verifies access tokens with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A nil now defaults to time.Now.
func NewIssuer(secret string, ttl time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue returns a signed token whose subject is the given identity.
func (i *Issuer) Issue(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("token subject is required")
	}
	if len(i.secret) == 0 {
		return "", errors.New("token secret is not configured")
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded subject.
func (i *Issuer) Verify(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", authdomain.ErrMalformedToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", authdomain.ErrMalformedToken
	}
	return claims.Subject, nil
}

// mapJWTError translates jwt library errors to auth errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return authdomain.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return authdomain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return authdomain.ErrTokenExpired
	default:
		return authdomain.ErrMalformedToken
	}
}
