package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (AuthResponse, string, int64, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (AuthResponse, string, int64, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// LoginWithGoogle returns the Google consent redirect URL.
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL string, state string, err error)
	// OAuthCallbackGoogle completes the Google flow for an existing user.
	OAuthCallbackGoogle(ctx context.Context, code string, session SessionTrackingRequest) (AuthResponse, string, int64, error)
}
