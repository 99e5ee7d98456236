package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money flowed into or out of the business.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// CategoryMembership is the category stamped on membership-fee income
// (enrollment charges and manual payments). The Spanish tag is kept because
// the reporting views and the gyms' own exports filter on it.
const CategoryMembership = "Cuota"

// Transaction is an immutable audit record of money movement, optionally
// linked to a client. The sum of a client's linked income transactions is not
// reconciled against their balance: the balance is an independent running
// total and transactions are a parallel audit trail.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary key (UUID)
	ClientID       string          `json:"clientID"`      // Optional; empty for unlinked entries (e.g. rent)
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"` // Non-negative magnitude; the type carries the sign
	Date           time.Time       `json:"date"`
	Type           TransactionType `json:"type"`
	Category       string          `json:"category"`
	IdempotencyKey string          `json:"-"` // Set on payment attempts; empty for manual entries
	AuditFields
}
