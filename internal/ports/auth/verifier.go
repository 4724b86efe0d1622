package auth

import "context"

// AuthVerifier verifies a token and returns claims or an error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer mints a token for the given claims.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
}
