/*
Package jwt issues and verifies the signed bearer tokens used to authenticate requests,
and provides the middleware that guards protected routes.

Tokens are HS256-signed, expire one hour after issuance and are not tracked server-side:
a correctly signed, unexpired token authenticates its holder until it expires.
*/
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenExpiration is how long an issued token stays valid.
	TokenExpiration = time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "profilehub"
)

var (
	// ErrMalformed means the token could not be parsed or lacks a usable user id.
	ErrMalformed = errors.New("token is malformed")

	// ErrInvalidSignature means the signature does not match the server secret.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrExpired means the token is past its expiry instant.
	ErrExpired = errors.New("token has expired")
)

// Service issues and verifies tokens with a server-held HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock makes the service read the current time from now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service signing with secretKey.
func NewService(secretKey string, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secretKey),
		ttl:    TokenExpiration,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates and signs a token for userID that expires TokenExpiration from now.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.now()

	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of tokenString and returns the user id it carries.
// Errors are ErrMalformed, ErrInvalidSignature or ErrExpired.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return uuid.Nil, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return uuid.Nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, ErrExpired
	default:
		return uuid.Nil, ErrMalformed
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrMalformed
	}

	return userID, nil
}
