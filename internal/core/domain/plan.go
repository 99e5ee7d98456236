package domain

import (
	"fmt"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Well-known plan codes. The catalog accepts arbitrary codes so a gym can add
// its own tiers; these are the ones seeded by default.
const (
	PlanBasic        = "basic"
	PlanIntermediate = "intermediate"
	PlanFull         = "full"
	PlanCrossfit     = "crossfit"
)

// PlanCatalog maps a membership plan code to its configured monthly price.
// It is part of the gym settings record and injected into the workflows that
// need it; nothing reads plan prices from ambient global state.
type PlanCatalog struct {
	Prices map[string]decimal.Decimal `json:"prices"`
}

// NewPlanCatalog builds a catalog from an existing price map. A nil map is
// treated as an empty catalog.
func NewPlanCatalog(prices map[string]decimal.Decimal) PlanCatalog {
	if prices == nil {
		prices = map[string]decimal.Decimal{}
	}
	return PlanCatalog{Prices: prices}
}

// PriceOf returns the configured monthly price for a plan code.
//
// Unknown codes resolve to zero. This fail-open behavior is inherited from
// the source system, where enrolling a client under a typo'd plan silently
// made the membership free. It is kept for compatibility; callers that want
// to reject unknown plans should check Has first.
func (c PlanCatalog) PriceOf(planCode string) decimal.Decimal {
	price, ok := c.Prices[planCode]
	if !ok {
		return decimal.Zero
	}
	return price
}

// Has reports whether the plan code has a catalog entry.
func (c PlanCatalog) Has(planCode string) bool {
	_, ok := c.Prices[planCode]
	return ok
}

// SetPrice overwrites the price for a plan code. No history is retained and
// existing balances are never retroactively adjusted.
func (c *PlanCatalog) SetPrice(planCode string, amount decimal.Decimal) error {
	if planCode == "" {
		return fmt.Errorf("%w: plan code must not be empty", apperrors.ErrValidation)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: plan price must not be negative, got %s", apperrors.ErrValidation, amount)
	}
	if c.Prices == nil {
		c.Prices = map[string]decimal.Decimal{}
	}
	c.Prices[planCode] = amount
	return nil
}
