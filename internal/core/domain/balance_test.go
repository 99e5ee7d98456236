package domain_test

import (
	"testing"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance_AddPayment(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		amount  string
		want    string
		wantErr bool
	}{
		{name: "payment against debt", start: "-50", amount: "50", want: "0"},
		{name: "partial payment", start: "-50", amount: "20", want: "-30"},
		{name: "overpayment becomes credit", start: "-10", amount: "25", want: "15"},
		{name: "payment on settled account", start: "0", amount: "35.50", want: "35.5"},
		{name: "zero amount rejected", start: "0", amount: "0", wantErr: true},
		{name: "negative amount rejected", start: "-50", amount: "-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := domain.BalanceOf(decimal.RequireFromString(tt.start))
			got, err := start.AddPayment(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				// Balance must be unchanged on rejection
				assert.True(t, got.Value.Equal(start.Value))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Value.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.Value, tt.want)
		})
	}
}

func TestBalance_ApplyCharge(t *testing.T) {
	start := domain.BalanceOf(decimal.NewFromInt(10))

	charged := start.ApplyCharge(decimal.NewFromInt(50))
	assert.True(t, charged.Value.Equal(decimal.NewFromInt(-40)))
	assert.True(t, charged.InDebt())

	// Charging zero is a no-op arithmetically
	unchanged := start.ApplyCharge(decimal.Zero)
	assert.True(t, unchanged.Value.Equal(start.Value))
}

func TestBalance_DebtAndCredit(t *testing.T) {
	debtor := domain.BalanceOf(decimal.NewFromFloat(-75.25))
	assert.True(t, debtor.InDebt())
	assert.True(t, debtor.Debt().Equal(decimal.NewFromFloat(75.25)))
	assert.True(t, debtor.Credit().Equal(decimal.Zero))

	creditor := domain.BalanceOf(decimal.NewFromInt(30))
	assert.False(t, creditor.InDebt())
	assert.True(t, creditor.Debt().Equal(decimal.Zero))
	assert.True(t, creditor.Credit().Equal(decimal.NewFromInt(30)))

	settled := domain.ZeroBalance()
	assert.False(t, settled.InDebt())
	assert.True(t, settled.Debt().Equal(decimal.Zero))
}
