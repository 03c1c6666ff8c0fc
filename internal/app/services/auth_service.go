package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
	"github.com/tatame/academy/internal/pkg/auth"
)

var (
	ErrAuthValidation = errors.New("auth validation failed")
)

// authProfileStore is the subset of ProfileRepository the auth service
// needs.
type authProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateLastLogin(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateContact(ctx context.Context, id string, fullName, email, phone, avatarURL *string) error
}

// authTokenStore is the subset of TokenRepository the auth service
// needs.
type authTokenStore interface {
	CreateToken(ctx context.Context, token string, profileID string, expiryDate time.Time) error
	GetTokenProfile(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllForProfile(ctx context.Context, profileID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuthService handles authentication and session resolution. A request
// is either resolved to an authenticated profile or treated as
// unauthenticated; there is no intermediate state the API surfaces.
type AuthService struct {
	profileRepo authProfileStore
	tokenRepo   authTokenStore
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	profileRepo authProfileStore,
	tokenRepo authTokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a profile by email and password and issues a
// token pair. Unknown emails and wrong passwords are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *models.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error resolving profile: %w", err)
	}

	if profile.PasswordHash == "" || !auth.CheckPassword(profile.PasswordHash, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	if err := s.profileRepo.UpdateLastLogin(ctx, profile.ID); err != nil {
		s.logger.Warn().Err(err).Str("profileID", profile.ID).Msg("Failed to stamp last login")
	}

	return tokens, profile, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued for its profile.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	profileID, err := s.tokenRepo.GetTokenProfile(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// UpdatePassword verifies the current password, replaces the stored
// hash and revokes every outstanding refresh token for the profile.
func (s *AuthService) UpdatePassword(ctx context.Context, profileID string, req *dto.UpdatePasswordRequest) error {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return err
	}

	if profile.PasswordHash == "" || !auth.CheckPassword(profile.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.profileRepo.UpdatePassword(ctx, profileID, hash); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForProfile(ctx, profileID); err != nil {
		s.logger.Warn().Err(err).Str("profileID", profileID).Msg("Failed to revoke refresh tokens after password change")
	}

	return nil
}

// PurgeExpiredTokens drops refresh tokens past their expiry. Run once
// at startup; revoked-but-unexpired tokens are kept until they lapse.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	purged, err := s.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("error purging expired tokens: %w", err)
	}
	if purged > 0 {
		s.logger.Info().Int64("purged", purged).Msg("Removed expired refresh tokens")
	}
	return purged, nil
}

// GetProfile resolves a profile id to its record
func (s *AuthService) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, profileID)
}

// UpdateProfile applies the contact subset of a profile
func (s *AuthService) UpdateProfile(ctx context.Context, profileID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if err := s.profileRepo.UpdateContact(ctx, profileID, req.FullName, nil, req.Phone, req.AvatarURL); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByID(ctx, profileID)
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
