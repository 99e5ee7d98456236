package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// billingService moves client balances and keeps the ledger.
type billingService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	txManager   portsrepo.TransactionManager
	settingsSvc portssvc.SettingsSvcFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(clientRepo portsrepo.ClientRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, txManager portsrepo.TransactionManager, settingsSvc portssvc.SettingsSvcFacade) portssvc.BillingSvcFacade {
	return &billingService{
		clientRepo:  clientRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		settingsSvc: settingsSvc,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// RegisterPayment credits a payment to a client's balance and records the
// ledger entry in one database transaction. The client row is locked for the
// duration so concurrent payments serialize instead of lost-updating each
// other. A repeated idempotency key returns the original transaction.
func (s *billingService) RegisterPayment(ctx context.Context, clientID string, req dto.RegisterPaymentRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	// Fast path: the key was already used, return the recorded entry.
	if req.IdempotencyKey != "" {
		existing, err := s.txnRepo.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		if existing != nil {
			logger.Info("Payment replay detected, returning original transaction",
				slog.String("client_id", clientID), slog.String("transaction_id", existing.TransactionID))
			return existing, nil
		}
	}

	now := time.Now().UTC()
	description := req.Description
	if description == "" {
		description = "Pago de cuota"
	}

	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		ClientID:       clientID,
		Description:    description,
		Amount:         req.Amount,
		Date:           now,
		Type:           domain.Income,
		Category:       domain.CategoryMembership,
		IdempotencyKey: req.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.txManager.Rollback(ctx, tx)
	}()

	client, err := s.clientRepo.FindClientByIDForUpdate(ctx, tx, clientID)
	if err != nil {
		return nil, err
	}

	newBalance, err := client.Balance.AddPayment(req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != "" {
			// A concurrent request won the unique-index race. Roll back and
			// return whatever that request recorded.
			_ = s.txManager.Rollback(ctx, tx)
			return s.txnRepo.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
		}
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}

	if err := s.clientRepo.UpdateClientBalanceInTx(ctx, tx, clientID, newBalance.Value, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update client balance: %w", err)
	}

	if err := s.clientRepo.UpdateMembershipPaidInTx(ctx, tx, clientID, now, userID); err != nil {
		return nil, fmt.Errorf("failed to stamp membership payment date: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		// The commit may or may not have landed; the caller must re-check
		// before retrying.
		return nil, fmt.Errorf("%w: failed to commit payment: %v", apperrors.ErrPartialWrite, err)
	}

	logger.Info("Payment registered",
		slog.String("client_id", clientID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", req.Amount.String()),
		slog.String("new_balance", newBalance.String()),
	)
	return &txn, nil
}

// ChargeMembership debits one membership period at the catalog price of the
// client's plan. The charge applies even when it pushes the balance negative;
// a plan without a catalog price charges nothing and records no ledger entry,
// but the payment date is stamped either way so the period counts as billed.
func (s *billingService) ChargeMembership(ctx context.Context, clientID string, userID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.txManager.Rollback(ctx, tx)
	}()

	client, err := s.clientRepo.FindClientByIDForUpdate(ctx, tx, clientID)
	if err != nil {
		return nil, err
	}

	price, err := s.settingsSvc.PlanPrice(ctx, client.Plan)
	if err != nil {
		return nil, err
	}

	newBalance := client.Balance.ApplyCharge(price)

	if price.IsPositive() {
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			ClientID:      clientID,
			Description:   fmt.Sprintf("Cuota %s - %s", client.Plan, client.Name),
			Amount:        price,
			Date:          now,
			Type:          domain.Income,
			Category:      domain.CategoryMembership,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
			return nil, fmt.Errorf("failed to record membership charge: %w", err)
		}
	}

	if err := s.clientRepo.UpdateClientBalanceInTx(ctx, tx, clientID, newBalance.Value, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update client balance: %w", err)
	}
	if err := s.clientRepo.UpdateMembershipPaidInTx(ctx, tx, clientID, now, userID); err != nil {
		return nil, fmt.Errorf("failed to stamp membership payment date: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit membership charge: %v", apperrors.ErrPartialWrite, err)
	}

	logger.Info("Membership charged",
		slog.String("client_id", clientID),
		slog.String("plan", client.Plan),
		slog.String("price", price.String()),
		slog.String("new_balance", newBalance.String()),
	)

	client.Balance = newBalance
	client.LastMembershipPayment = &now
	client.LastUpdatedAt = now
	client.LastUpdatedBy = userID
	return client, nil
}

// RecordTransaction persists a standalone income or expense entry. It never
// touches any client balance; linked entries are an audit annotation only.
func (s *billingService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	clientID := ""
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindClientByID(ctx, *req.ClientID); err != nil {
			return nil, err
		}
		clientID = *req.ClientID
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ClientID:      clientID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          date,
		Type:          req.Type,
		Category:      req.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// DeleteTransaction removes a ledger entry. Balances are not recalculated:
// the ledger is an audit trail, not the source of truth for balances.
func (s *billingService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ListTransactions retrieves a page of ledger entries, newest first.
func (s *billingService) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.txnRepo.ListTransactions(ctx, limit, nextToken)
}

// ListClientTransactions retrieves a page of one client's ledger entries.
func (s *billingService) ListClientTransactions(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return nil, nil, err
	}
	return s.txnRepo.ListTransactionsByClientID(ctx, clientID, limit, nextToken)
}

// CashFlowSummary totals income and expenses recorded since the given instant.
func (s *billingService) CashFlowSummary(ctx context.Context, since time.Time) (*dto.CashFlowSummaryResponse, error) {
	sums, err := s.txnRepo.SumByTypeSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to total transactions: %w", err)
	}

	income := sums[domain.Income]
	expense := sums[domain.Expense]
	return &dto.CashFlowSummaryResponse{
		Since:        since,
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
	}, nil
}

// ListDebtors retrieves every active client carrying debt, largest debt first.
func (s *billingService) ListDebtors(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.ListDebtors(ctx)
}

// TotalOwed sums the outstanding debt across all debtors as a non-negative
// amount. Clients in credit contribute nothing.
func (s *billingService) TotalOwed(ctx context.Context) (decimal.Decimal, error) {
	debtors, err := s.clientRepo.ListDebtors(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range debtors {
		total = total.Add(d.Balance.Debt())
	}
	return total, nil
}
