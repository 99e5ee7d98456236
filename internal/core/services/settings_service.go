package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// settingsService manages the gym profile and the plan price catalog.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings retrieves the gym settings, with defaults when never saved.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.GymSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gym settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the gym profile and catalog.
func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.GymSettings, error) {
	// Every price in the incoming catalog must be valid before any is applied.
	catalog := domain.NewPlanCatalog(nil)
	for code, amount := range req.MembershipPrices {
		if err := catalog.SetPrice(code, amount); err != nil {
			return nil, err
		}
	}

	current, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gym settings: %w", err)
	}

	now := time.Now().UTC()
	updated := domain.GymSettings{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Plan:    req.Plan,
		Catalog: catalog,
		AuditFields: domain.AuditFields{
			CreatedAt:     current.CreatedAt,
			CreatedBy:     current.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if updated.CreatedBy == "" {
		updated.CreatedAt = now
		updated.CreatedBy = userID
	}

	if err := s.settingsRepo.SaveSettings(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to save gym settings")
		return nil, fmt.Errorf("failed to save gym settings: %w", err)
	}
	return &updated, nil
}

// SetPlanPrice sets or overwrites the monthly price for one plan code.
func (s *settingsService) SetPlanPrice(ctx context.Context, planCode string, amount decimal.Decimal, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gym settings: %w", err)
	}

	if err := settings.Catalog.SetPrice(planCode, amount); err != nil {
		return err
	}

	now := time.Now().UTC()
	settings.LastUpdatedAt = now
	settings.LastUpdatedBy = userID

	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to save plan price", "plan_code", planCode)
		return fmt.Errorf("failed to save plan price: %w", err)
	}

	logger.Info("Plan price updated", "plan_code", planCode, "amount", amount.String())
	return nil
}

// PlanPrice resolves the catalog price for a plan code, zero when unknown.
func (s *settingsService) PlanPrice(ctx context.Context, planCode string) (decimal.Decimal, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load gym settings: %w", err)
	}
	return settings.Catalog.PriceOf(planCode), nil
}
