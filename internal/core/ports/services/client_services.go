package services

import (
	"context"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client by its unique identifier.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of clients, optionally filtered by
	// a name or email search string.
	ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// EnrollClient registers a new client, charges the first membership period up
	// front, and records the corresponding ledger entry when the plan is priced.
	EnrollClient(ctx context.Context, req dto.EnrollClientRequest, userID string) (*domain.Client, error)

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
