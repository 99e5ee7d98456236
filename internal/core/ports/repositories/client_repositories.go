package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of clients, optionally filtered by a
	// case-insensitive name or email search string.
	ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error)

	// ListDebtors retrieves every active client whose balance is negative,
	// ordered by debt size descending.
	ListDebtors(ctx context.Context) ([]domain.Client, error)

	// ListAbsentSince retrieves active clients whose last recorded visit is
	// before the cutoff (or who never visited).
	ListAbsentSince(ctx context.Context, cutoff time.Time) ([]domain.Client, error)

	// ListBirthdaysInMonth retrieves active clients whose birthday falls in the given month.
	ListBirthdaysInMonth(ctx context.Context, month time.Month) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error
}

// ClientTransactionSupport defines operations that support balance updates
type ClientTransactionSupport interface {
	// SaveClientInTx persists a new client within a caller-owned transaction so
	// enrollment commits atomically with its ledger entry.
	SaveClientInTx(ctx context.Context, tx pgx.Tx, client domain.Client) error

	// FindClientByIDForUpdate selects a client and locks the row for update within a transaction.
	FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error)

	// UpdateClientBalanceInTx writes a client's new balance within a given transaction.
	UpdateClientBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string, newBalance decimal.Decimal, userID string, now time.Time) error

	// UpdateMembershipPaidInTx stamps the last membership payment date within a transaction.
	UpdateMembershipPaidInTx(ctx context.Context, tx pgx.Tx, clientID string, paidAt time.Time, userID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
// This is a facade for clients that need access to all operations
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientTransactionSupport
}

// ClientRepositoryWithTx extends ClientRepositoryFacade with transaction capabilities
type ClientRepositoryWithTx interface {
	ClientRepositoryFacade
	TransactionManager
}
