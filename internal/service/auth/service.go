package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/auth"
	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/jwt"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/oauth"
)

type Service struct {
	userRepo         user.UserRepository
	refreshTokenRepo auth.RefreshTokenRepository
	jwtService       jwt.Service
	googleService    oauth.GoogleService // nil when OAuth is not configured
}

func NewService(
	userRepo user.UserRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) *Service {
	return &Service{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		googleService:    googleService,
	}
}

// Register creates an EMPLOYEE account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return user.User{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.RoleEmployee,
		Timezone:     req.Timezone,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

// Login verifies credentials and issues an access and refresh token
// pair, persisting the refresh token for later revocation.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if account.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// Refresh rotates a valid refresh token into a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	revoked, err := s.refreshTokenRepo.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	if typ, ok := token.Get("type"); !ok || typ != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := token.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	account, err := s.userRepo.GetByID(ctx, fmt.Sprintf("%v", userID))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, account)
}

// Logout revokes both tokens of a session.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		s.jwtService.RevokeToken(accessToken)
	}
	if refreshToken == "" {
		return nil
	}
	if err := s.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// GoogleRedirectURL starts the OAuth flow. Empty when OAuth is not
// configured.
func (s *Service) GoogleRedirectURL(userAgent string) (url, state string) {
	if s.googleService == nil {
		return "", ""
	}
	state = s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), state
}

// GoogleCallback exchanges the authorization code, provisioning an
// account on first login.
func (s *Service) GoogleCallback(ctx context.Context, code string) (auth.TokenResponse, error) {
	if s.googleService == nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	oauthToken, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, oauthToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	account, err := s.userRepo.GetByEmail(ctx, info.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		account, err = s.userRepo.Create(ctx, user.User{
			Email:    info.Email,
			FullName: info.Name,
			Role:     user.RoleEmployee,
			Timezone: "UTC",
		})
	}
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to resolve google user: %w", err)
	}

	return s.issueTokens(ctx, account)
}

func (s *Service) issueTokens(ctx context.Context, account user.User) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(
		account.ID, account.Email, account.CampaignID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := s.refreshTokenRepo.Store(ctx, account.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		ExpiresAt:        expiresAt,
		UserID:           account.ID,
		Role:             string(account.Role),
	}, nil
}
