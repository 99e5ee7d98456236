package domain

import (
	"fmt"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Balance is a client's running ledger total.
//
// Sign convention, fixed once for the whole codebase: negative means debt
// owed by the client, positive means credit in the client's favor. All
// consumers (debt queries, access-control banners, summaries) must go through
// the accessors below instead of reading the sign directly, so the convention
// cannot be misread.
type Balance struct {
	Value decimal.Decimal `json:"value"`
}

// ZeroBalance is the balance of a fully settled client.
func ZeroBalance() Balance {
	return Balance{Value: decimal.Zero}
}

// BalanceOf wraps a raw signed decimal as read from the store.
func BalanceOf(v decimal.Decimal) Balance {
	return Balance{Value: v}
}

// InDebt reports whether the client currently owes the business money.
func (b Balance) InDebt() bool {
	return b.Value.IsNegative()
}

// Debt returns the magnitude owed by the client, or zero when not in debt.
func (b Balance) Debt() decimal.Decimal {
	if !b.InDebt() {
		return decimal.Zero
	}
	return b.Value.Neg()
}

// Credit returns the magnitude held in the client's favor, or zero.
func (b Balance) Credit() decimal.Decimal {
	if b.InDebt() {
		return decimal.Zero
	}
	return b.Value
}

// AddPayment applies a manual payment and returns the new balance.
// A payment always moves the balance toward credit; amount must be strictly
// positive (the source system never guarded this, which allowed a "payment"
// to silently grow a debt).
func (b Balance) AddPayment(amount decimal.Decimal) (Balance, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return b, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	return Balance{Value: b.Value.Add(amount)}, nil
}

// ApplyCharge subtracts a membership charge and returns the new balance.
// The charge is unconditional: a zero price is a no-op arithmetically but the
// caller still stamps the last-membership-payment date.
func (b Balance) ApplyCharge(price decimal.Decimal) Balance {
	return Balance{Value: b.Value.Sub(price)}
}

func (b Balance) String() string {
	return b.Value.String()
}
