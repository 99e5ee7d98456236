package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// SettingsSvcFacade manages the gym profile and the plan price catalog.
type SettingsSvcFacade interface {
	// GetSettings retrieves the gym settings, with defaults when never saved.
	GetSettings(ctx context.Context) (*domain.GymSettings, error)

	// UpdateSettings replaces the gym profile and catalog.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.GymSettings, error)

	// SetPlanPrice sets or overwrites the monthly price for one plan code.
	SetPlanPrice(ctx context.Context, planCode string, amount decimal.Decimal, userID string) error

	// PlanPrice resolves the catalog price for a plan code, zero when unknown.
	PlanPrice(ctx context.Context, planCode string) (decimal.Decimal, error)
}
