// Package token signs and verifies the bearer tokens that carry the
// authenticated actor. HS256 with a shared secret; there is no remote
// identity service in this system.
package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter-manager/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrEmptySecret  = errors.New("token: secret required")
	ErrInvalidToken = errors.New("token: invalid token")
)

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ auth.AuthVerifier = (*Service)(nil)
var _ auth.TokenIssuer = (*Service)(nil)

func New(secret string, ttl time.Duration) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) Issue(_ context.Context, claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.Username) == "" || !claims.Role.Valid() {
		return "", ErrInvalidToken
	}

	now := s.now()
	tc := tokenClaims{
		Role: string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return t.SignedString(s.secret)
}

func (s *Service) Verify(_ context.Context, tokenString string) (auth.Claims, error) {
	tc := &tokenClaims{}

	t, err := jwt.ParseWithClaims(tokenString, tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return auth.Claims{}, err
	}
	if !t.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	role := auth.Role(tc.Role)
	if strings.TrimSpace(tc.Subject) == "" || !role.Valid() {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{Username: tc.Subject, Role: role}, nil
}
