package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrUserNotFound        = errors.New("user not found")
)
