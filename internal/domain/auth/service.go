package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (*TokenResponse, error)
	LoginWithGoogle(ctx context.Context, email, googleID string, session SessionTrackingRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
