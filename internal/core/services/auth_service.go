package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/utils"
	"github.com/padelchilecito-gestion/Sistema-gym/pkg/config"
)

// authService handles staff sign-in and access token issuance. It requires
// access to application configuration for secrets and expiry times.
type authService struct {
	BaseService
	cfg       *config.Config
	staffRepo portsrepo.StaffRepositoryFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, staffRepo portsrepo.StaffRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:       cfg,
		staffRepo: staffRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// GenerateAccessToken creates a new JWT access token for the given staff member.
func (s *authService) GenerateAccessToken(ctx context.Context, staff *domain.Staff) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(staff.StaffID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// Login verifies an email and password pair. The same error comes back for an
// unknown email and a wrong password so the endpoint cannot be used to probe
// which staff accounts exist.
func (s *authService) Login(ctx context.Context, email string, password string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up staff account: %w", err)
	}

	if !staff.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, staff.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return staff, nil
}

// LoginWithGoogle validates a Google ID token and returns the staff account
// registered under the token's verified email. There is no auto-provisioning:
// an unknown email is rejected.
func (s *authService) LoginWithGoogle(ctx context.Context, idTokenString string) (*domain.Staff, error) {
	payload, err := s.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google token carries no email claim", apperrors.ErrUnauthorized)
	}

	staff, err := s.staffRepo.FindStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up staff account: %w", err)
	}
	if !staff.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return staff, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns
// the payload if valid.
func (s *authService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
