package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired marks a token whose expiry has elapsed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid marks a malformed token, a bad signature, or a
	// disallowed signing algorithm.
	ErrInvalid = errors.New("token invalid")
	// ErrUnverifiable marks any other rejection, such as a token
	// presented before its nbf claim.
	ErrUnverifiable = errors.New("token unverifiable")
)

// Claims are the identity claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Service issues and verifies signed session tokens. Tokens are
// stateless: possession of a valid token is the sole proof of
// authentication, there is no server-side session table.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the subject's id and email, expiring
// a fixed TTL from now.
func (s *Service) Issue(userID, email string) (string, error) {
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign failed: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims.
// Rejections are distinguished: ErrExpired for an elapsed expiry,
// ErrInvalid for tampering, malformed input, or a wrong algorithm,
// ErrUnverifiable for anything else.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalid
		default:
			return nil, ErrUnverifiable
		}
	}

	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalid
	}

	return claims, nil
}
