package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/auth"
	"github.com/fensterhq/fieldservice-backend-go/internal/domain/user"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/database"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/jwt"
	"github.com/fensterhq/fieldservice-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (*auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &user.User{
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.RoleAdmin,
	}
	if req.CompanyName != "" {
		newUser.CompanyName = &req.CompanyName
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.UserRepository.Create(txCtx, newUser); err != nil {
			return err
		}
		return a.issueTokens(txCtx, newUser, session, &tokenResponse)
	})
	if err != nil {
		return nil, err
	}

	return &tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (*auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return a.issueTokens(txCtx, userData, session, &tokenResponse)
	})
	if err != nil {
		return nil, err
	}

	return &tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService. It provisions the account on
// first login and links the Google identity to an existing one otherwise.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, googleID string, session auth.SessionTrackingRequest) (*auth.TokenResponse, error) {
	provider := "google"

	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get user by email: %w", err)
		}
		userData = &user.User{
			Email:           email,
			Role:            user.RoleAdmin,
			EmailVerified:   true,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		}
		if err := a.UserRepository.Create(ctx, userData); err != nil {
			return nil, err
		}
	} else if userData.OAuthProvider == nil {
		if err := a.UserRepository.LinkOAuthProvider(ctx, userData.ID, provider, googleID); err != nil {
			return nil, err
		}
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return a.issueTokens(txCtx, userData, session, &tokenResponse)
	})
	if err != nil {
		return nil, err
	}

	return &tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (*auth.TokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, auth.ErrInvalidToken
	}

	userID, revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return nil, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.RevokeToken(refreshToken)
	return a.RevokeRefreshToken(ctx, refreshToken)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData *user.User, session auth.SessionTrackingRequest, out *auth.TokenResponse) error {
	var err error

	out.AccessToken, out.AccessTokenExpiresIn, err = a.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	out.RefreshToken, out.RefreshTokenExpiresIn, err = a.GenerateRefreshToken(userData.ID)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, userData.ID, out.RefreshToken, out.RefreshTokenExpiresIn, session); err != nil {
		return fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	return nil
}
