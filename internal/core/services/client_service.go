package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// clientService manages client records and the enrollment workflow.
type clientService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	txManager   portsrepo.TransactionManager
	settingsSvc portssvc.SettingsSvcFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, txManager portsrepo.TransactionManager, settingsSvc portssvc.SettingsSvcFacade) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo:  clientRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		settingsSvc: settingsSvc,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// EnrollClient registers a new client and charges the first membership period
// up front: the stored balance is the declared initial balance minus the plan
// price. When the plan has a positive catalog price the matching income entry
// is written in the same database transaction; an unpriced plan charges
// nothing and leaves no ledger trace. Unknown plan codes price at zero, so a
// typo'd plan silently enrolls for free; callers wanting strictness must
// validate the code against the catalog first.
func (s *clientService) EnrollClient(ctx context.Context, req dto.EnrollClientRequest, userID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	price, err := s.settingsSvc.PlanPrice(ctx, req.Plan)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clientID := uuid.NewString()

	balance := domain.BalanceOf(req.InitialBalance).ApplyCharge(price)

	client := domain.Client{
		ClientID:              clientID,
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		JoinDate:              now,
		Status:                domain.StatusActive,
		Balance:               balance,
		Plan:                  req.Plan,
		Points:                0,
		Level:                 domain.LevelBronze,
		Streak:                0,
		BirthDate:             req.BirthDate,
		EmergencyContact:      req.EmergencyContact,
		LastMembershipPayment: &now,
		IsActive:              true,
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

	if err := s.clientRepo.SaveClientInTx(ctx, tx, client); err != nil {
		s.LogError(ctx, err, "Failed to save new client")
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	if price.IsPositive() {
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			ClientID:      clientID,
			Description:   fmt.Sprintf("Cuota %s - %s", req.Plan, req.Name),
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
			return nil, fmt.Errorf("failed to record enrollment charge: %w", err)
		}
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit enrollment: %v", apperrors.ErrPartialWrite, err)
	}

	logger.Info("Client enrolled",
		slog.String("client_id", clientID),
		slog.String("plan", req.Plan),
		slog.String("plan_price", price.String()),
		slog.String("balance", balance.String()),
	)
	return &client, nil
}

// GetClientByID retrieves a specific client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

// ListClients retrieves a paginated list of clients, optionally filtered by a
// name or email search string.
func (s *clientService) ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.clientRepo.ListClients(ctx, search, limit, offset)
}

// UpdateClient applies the provided fields to an existing client. The balance
// is deliberately not updatable here; it only moves through payments and
// membership charges.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Plan != nil {
		client.Plan = *req.Plan
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.BirthDate != nil {
		client.BirthDate = req.BirthDate
	}
	if req.EmergencyContact != nil {
		client.EmergencyContact = *req.EmergencyContact
	}

	now := time.Now().UTC()
	client.LastUpdatedAt = now
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeactivateClient marks a client as inactive. The record and its ledger
// history are retained.
func (s *clientService) DeactivateClient(ctx context.Context, clientID string, userID string) error {
	now := time.Now().UTC()
	if err := s.clientRepo.DeactivateClient(ctx, clientID, userID, now); err != nil {
		return err
	}
	s.LogInfo(ctx, "Client deactivated", slog.String("client_id", clientID))
	return nil
}
