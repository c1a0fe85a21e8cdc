package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked server-side.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
