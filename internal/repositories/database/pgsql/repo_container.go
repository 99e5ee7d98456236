package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository against a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ClientRepo:      newPgxClientRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		SettingsRepo:    newPgxSettingsRepository(pool),
		CheckInRepo:     newPgxCheckInRepository(pool),
		RoutineRepo:     newPgxRoutineRepository(pool),
		StaffRepo:       newPgxStaffRepository(pool),
		TxManager:       &BaseRepository{Pool: pool},
	}
}
