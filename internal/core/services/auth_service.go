package services

import (
	"context"
	"errors"
	"time"

	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/config"
	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/clock"
	"campus-inventory/internal/pkg/jwt"
	"campus-inventory/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService issues admin access tokens
type AuthService struct {
	adminRepo repositories.AdminRepository
	cfg       config.JWTConfig
	clock     clock.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo repositories.AdminRepository, cfg config.JWTConfig, clk clock.Clock) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
		clock:     clk,
	}
}

// LoginOutput represents a successful login
type LoginOutput struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Admin       *models.Admin `json:"admin"`
}

// Login checks admin credentials and signs an access token
func (s *AuthService) Login(ctx context.Context, username, plain string) (*LoginOutput, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive || !password.Verify(plain, admin.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	token, err := jwt.GenerateAccessToken(admin.ID, admin.Username, s.cfg.Secret, s.cfg.AccessTokenMins, now)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(time.Duration(s.cfg.AccessTokenMins) * time.Minute),
		Admin:       admin,
	}, nil
}
