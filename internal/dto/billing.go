package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// RegisterPaymentRequest defines the data needed to register a client payment.
type RegisterPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
	Description    string          `json:"description"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

// CreateTransactionRequest defines a standalone ledger entry (no balance effect).
type CreateTransactionRequest struct {
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required,decimalgtzero"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string                 `json:"category" binding:"required"`
	Date        *time.Time             `json:"date"`     // Defaults to now
	ClientID    *string                `json:"clientID"` // Optional link to a client
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	ClientID      string                 `json:"clientID,omitempty"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          time.Time              `json:"date"`
	Type          domain.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		ClientID:      t.ClientID,
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.Date,
		Type:          t.Type,
		Category:      t.Category,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries with its pagination token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CashFlowSummaryResponse totals income and expenses over a reporting window.
type CashFlowSummaryResponse struct {
	Since        time.Time       `json:"since"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
}
