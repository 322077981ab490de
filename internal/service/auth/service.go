package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/auth"
	"github.com/openrms/pos-backend-go/internal/domain/company"
	"github.com/openrms/pos-backend-go/internal/domain/user"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/openrms/pos-backend-go/internal/pkg/jwt"
	"github.com/openrms/pos-backend-go/internal/pkg/oauth"
	"github.com/openrms/pos-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	jwt.Service
	postgresql.JWTRepository
	google oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	companyRepository company.CompanyRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
		google:            googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. Registration creates the company and
// its owner account together; the owner is logged in immediately.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.AuthResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, "", 0, err
	}

	existing, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != "" {
		return auth.AuthResponse{}, "", 0, user.ErrUserEmailExists
	}

	if _, err := a.CompanyRepository.GetByUsername(ctx, req.CompanyUsername); err == nil {
		return auth.AuthResponse{}, "", 0, company.ErrCompanyUsernameExists
	} else if !errors.Is(err, company.ErrCompanyNotFound) {
		return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to check company username: %w", err)
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		newUser      user.User
		accessToken  string
		accessExp    int64
		refreshToken string
		refreshExp   int64
	)
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newCompany, err := a.CompanyRepository.Create(txCtx, company.Company{
			Name:     req.CompanyName,
			Username: req.CompanyUsername,
			Currency: "IDR",
			Timezone: "Asia/Jakarta",
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		newUser, err = a.UserRepository.Create(txCtx, user.User{
			CompanyID:    &newCompany.ID,
			Email:        req.Email,
			FullName:     req.FullName,
			PasswordHash: &hashedPassword,
			Role:         user.RoleOwner,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		accessToken, accessExp, err = a.Service.GenerateAccessToken(newUser.ID, newUser.Email, newUser.CompanyID, newUser.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		refreshToken, refreshExp, err = a.Service.GenerateRefreshToken(newUser.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, newUser.ID, refreshToken, refreshExp, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.AuthResponse{}, "", 0, err
	}

	return toAuthResponse(newUser, accessToken, accessExp), refreshToken, refreshExp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.AuthResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, "", 0, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil || !userData.IsActive {
		return auth.AuthResponse{}, "", 0, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, session auth.SessionTrackingRequest) (auth.AuthResponse, string, int64, error) {
	var (
		accessToken  string
		accessExp    int64
		refreshToken string
		refreshExp   int64
	)
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		accessToken, accessExp, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.CompanyID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		refreshToken, refreshExp, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, refreshToken, refreshExp, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.AuthResponse{}, "", 0, err
	}

	return toAuthResponse(userData, accessToken, accessExp), refreshToken, refreshExp, nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) (string, string, error) {
	state := a.google.GenerateState(userAgent)
	return a.google.RedirectURL(state), state, nil
}

// OAuthCallbackGoogle implements auth.AuthService. Google sign-in only logs
// in accounts that already exist, matched by linked Google id then by email.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string, session auth.SessionTrackingRequest) (auth.AuthResponse, string, int64, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.AuthResponse{}, "", 0, auth.ErrInvalidToken
	}
	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to verify google user: %w", err)
	}

	userData, err := a.UserRepository.GetByOAuth(ctx, "google", info.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to get user by oauth id: %w", err)
		}
		userData, err = a.UserRepository.GetByEmail(ctx, info.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.AuthResponse{}, "", 0, auth.ErrUserNotFound
			}
			return auth.AuthResponse{}, "", 0, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	if !userData.IsActive {
		return auth.AuthResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

func toAuthResponse(u user.User, accessToken string, expiresAt int64) auth.AuthResponse {
	return auth.AuthResponse{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CompanyID: u.CompanyID,
		Role:      string(u.Role),
		Token: auth.TokenResponse{
			AccessToken: accessToken,
			ExpiresAt:   expiresAt,
			TokenType:   "Bearer",
		},
	}
}
