package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimal places, the precision used
// for membership prices and ledger entries.
func FormatMoney(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
