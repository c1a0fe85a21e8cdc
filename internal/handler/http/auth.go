package http

import (
	"encoding/json"
	"net/http"

	"github.com/fensterhq/fieldservice-backend-go/internal/domain/auth"
	"github.com/fensterhq/fieldservice-backend-go/internal/handler/http/response"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/jwt"
	"github.com/fensterhq/fieldservice-backend-go/internal/pkg/oauth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	GoogleLogin(w http.ResponseWriter, r *http.Request)
	GoogleCallback(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService   auth.AuthService
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service, googleService oauth.GoogleService) AuthHandler {
	return &authHandlerImpl{
		authService:   authService,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func sessionFromRequest(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// Register implements AuthHandler
func (h *authHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Register(r.Context(), req, sessionFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Created(w, "Account created", tokens)
}

// Login implements AuthHandler
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := h.authService.Login(r.Context(), req, sessionFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Success(w, tokens)
}

// GoogleLogin implements AuthHandler
func (h *authHandlerImpl) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := h.googleService.GenerateState(r.UserAgent())
	if state == "" {
		response.InternalServerError(w, "Failed to start OAuth flow")
		return
	}
	http.Redirect(w, r, h.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback implements AuthHandler
func (h *authHandlerImpl) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	token, err := h.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		response.Unauthorized(w, "Failed to verify authorization code")
		return
	}

	userInfo, err := h.googleService.VerifyUser(r.Context(), token)
	if err != nil {
		response.Unauthorized(w, "Failed to fetch Google account")
		return
	}
	if !userInfo.VerifiedEmail {
		response.Forbidden(w, "Google account email is not verified")
		return
	}

	tokens, err := h.authService.LoginWithGoogle(r.Context(), userInfo.Email, userInfo.GoogleID, sessionFromRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Success(w, tokens)
}

// RefreshToken implements AuthHandler
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		if cookie, cerr := r.Cookie("refresh_token"); cerr == nil {
			req.RefreshToken = cookie.Value
		}
	}

	tokens, err := h.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokens)
}

// Logout implements AuthHandler
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		if cookie, cerr := r.Cookie("refresh_token"); cerr == nil {
			req.RefreshToken = cookie.Value
		}
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}
