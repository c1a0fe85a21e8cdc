package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/auth"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// CreateRefreshToken implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, ip_address, user_agent)
		VALUES ($1, $2, to_timestamp($3), $4, $5)
	`

	_, err := q.Exec(ctx, query, userID, token, expiresAt, session.IPAddress, session.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// IsRefreshTokenRevoked implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, revoked_at IS NOT NULL OR expires_at < NOW()
		FROM refresh_tokens
		WHERE token = $1
	`

	var userID string
	var revoked bool
	err := q.QueryRow(ctx, query, token).Scan(&userID, &revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", true, auth.ErrInvalidToken
		}
		return "", true, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return userID, revoked, nil
}

// RevokeRefreshToken implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	_, err := q.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForUser implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	_, err := q.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}
