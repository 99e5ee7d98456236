package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// PaymentSvc defines operations that move a client's balance
type PaymentSvc interface {
	// RegisterPayment credits a payment to a client's balance and records the
	// ledger entry atomically. A repeated idempotency key returns the original
	// transaction without applying the payment twice.
	RegisterPayment(ctx context.Context, clientID string, req dto.RegisterPaymentRequest, userID string) (*domain.Transaction, error)

	// ChargeMembership debits one membership period from a client's balance at
	// the catalog price of their plan and records the ledger entry when the
	// plan is priced.
	ChargeMembership(ctx context.Context, clientID string, userID string) (*domain.Client, error)
}

// LedgerSvc defines read and bookkeeping operations over the transaction ledger
type LedgerSvc interface {
	// RecordTransaction persists a standalone income or expense entry with no
	// balance effect.
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a ledger entry.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ListTransactions retrieves a page of ledger entries, newest first, with a
	// token for the next page.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListClientTransactions retrieves a page of one client's ledger entries.
	ListClientTransactions(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CashFlowSummary totals income and expenses recorded since the given instant.
	CashFlowSummary(ctx context.Context, since time.Time) (*dto.CashFlowSummaryResponse, error)
}

// DebtSvc defines the delinquency queries
type DebtSvc interface {
	// ListDebtors retrieves every active client carrying debt, largest debt first.
	ListDebtors(ctx context.Context) ([]domain.Client, error)

	// TotalOwed sums the outstanding debt across all debtors as a non-negative amount.
	TotalOwed(ctx context.Context) (decimal.Decimal, error)
}

// BillingSvcFacade combines all billing-related service interfaces
type BillingSvcFacade interface {
	PaymentSvc
	LedgerSvc
	DebtSvc
}
