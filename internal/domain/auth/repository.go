package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so revocation
// survives restarts. Implementations store a hash, never the token.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, token string, expiresAt int64) error

	// IsRevoked reports true for unknown, expired, or revoked tokens.
	IsRevoked(ctx context.Context, token string) (bool, error)

	Revoke(ctx context.Context, token string) error
}
