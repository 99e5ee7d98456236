package dto

import (
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// UpdateSettingsRequest defines the data allowed for updating the gym settings.
type UpdateSettingsRequest struct {
	Name             string                     `json:"name" binding:"required"`
	LogoURL          string                     `json:"logoUrl" binding:"omitempty,url"`
	Plan             domain.SubscriptionPlan    `json:"plan" binding:"required,oneof=BASIC STANDARD FULL"`
	MembershipPrices map[string]decimal.Decimal `json:"membershipPrices" binding:"required"`
}

// SetPlanPriceRequest sets the price of a single plan code.
type SetPlanPriceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"decimalgtezero"`
}

// SettingsResponse defines the data returned for the gym settings.
type SettingsResponse struct {
	Name             string                     `json:"name"`
	LogoURL          string                     `json:"logoUrl"`
	Plan             domain.SubscriptionPlan    `json:"plan"`
	MembershipPrices map[string]decimal.Decimal `json:"membershipPrices"`
}

// ToSettingsResponse converts domain.GymSettings to SettingsResponse DTO
func ToSettingsResponse(s *domain.GymSettings) SettingsResponse {
	return SettingsResponse{
		Name:             s.Name,
		LogoURL:          s.LogoURL,
		Plan:             s.Plan,
		MembershipPrices: s.Catalog.Prices,
	}
}
