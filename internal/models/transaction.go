package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a ledger entry row.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	ClientID       string          `db:"client_id"` // Nullable
	Description    string          `db:"description"`
	Amount         decimal.Decimal `db:"amount"`
	Date           time.Time       `db:"date"`
	Type           string          `db:"type"`
	Category       string          `db:"category"`
	IdempotencyKey string          `db:"idempotency_key"` // Nullable, unique when set
	AuditFields
}
