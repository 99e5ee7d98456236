package domain_test

import (
	"testing"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() domain.PlanCatalog {
	return domain.NewPlanCatalog(map[string]decimal.Decimal{
		domain.PlanBasic:        decimal.NewFromInt(20),
		domain.PlanIntermediate: decimal.NewFromInt(35),
		domain.PlanFull:         decimal.NewFromInt(50),
	})
}

func TestPlanCatalog_PriceOf(t *testing.T) {
	catalog := testCatalog()

	assert.True(t, catalog.PriceOf(domain.PlanBasic).Equal(decimal.NewFromInt(20)))
	assert.True(t, catalog.PriceOf(domain.PlanFull).Equal(decimal.NewFromInt(50)))

	// Unknown codes fail open to zero
	assert.True(t, catalog.PriceOf("nonexistent").Equal(decimal.Zero))
	assert.False(t, catalog.Has("nonexistent"))
}

func TestPlanCatalog_SetPrice(t *testing.T) {
	catalog := testCatalog()

	require.NoError(t, catalog.SetPrice(domain.PlanCrossfit, decimal.NewFromInt(60)))
	assert.True(t, catalog.PriceOf(domain.PlanCrossfit).Equal(decimal.NewFromInt(60)))

	// Overwrite keeps no history
	require.NoError(t, catalog.SetPrice(domain.PlanBasic, decimal.NewFromInt(25)))
	assert.True(t, catalog.PriceOf(domain.PlanBasic).Equal(decimal.NewFromInt(25)))

	err := catalog.SetPrice(domain.PlanBasic, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = catalog.SetPrice("", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPlanCatalog_NilMap(t *testing.T) {
	var catalog domain.PlanCatalog
	assert.True(t, catalog.PriceOf(domain.PlanBasic).Equal(decimal.Zero))
	require.NoError(t, catalog.SetPrice(domain.PlanBasic, decimal.NewFromInt(20)))
	assert.True(t, catalog.PriceOf(domain.PlanBasic).Equal(decimal.NewFromInt(20)))
}
