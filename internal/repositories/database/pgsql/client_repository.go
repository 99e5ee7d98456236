package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/models"
)

const clientColumns = `client_id, name, email, phone, join_date, status, balance, plan, points, level, streak, last_visit, birth_date, emergency_contact, assigned_routine_id, routine_start_date, last_membership_payment, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryWithTx {
	return &PgxClientRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryWithTx = (*PgxClientRepository)(nil)

// Helper to convert domain.Client to models.Client for DB storage
func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:              d.ClientID,
		Name:                  d.Name,
		Email:                 d.Email,
		Phone:                 d.Phone,
		JoinDate:              d.JoinDate,
		Status:                string(d.Status),
		Balance:               d.Balance.Value,
		Plan:                  d.Plan,
		Points:                d.Points,
		Level:                 string(d.Level),
		Streak:                d.Streak,
		LastVisit:             d.LastVisit,
		BirthDate:             d.BirthDate,
		EmergencyContact:      d.EmergencyContact,
		AssignedRoutineID:     d.AssignedRoutineID,
		RoutineStartDate:      d.RoutineStartDate,
		LastMembershipPayment: d.LastMembershipPayment,
		IsActive:              d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Client from DB to domain.Client
func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:              m.ClientID,
		Name:                  m.Name,
		Email:                 m.Email,
		Phone:                 m.Phone,
		JoinDate:              m.JoinDate,
		Status:                domain.MembershipStatus(m.Status),
		Balance:               domain.BalanceOf(m.Balance),
		Plan:                  m.Plan,
		Points:                m.Points,
		Level:                 domain.ClientLevel(m.Level),
		Streak:                m.Streak,
		LastVisit:             m.LastVisit,
		BirthDate:             m.BirthDate,
		EmergencyContact:      m.EmergencyContact,
		AssignedRoutineID:     m.AssignedRoutineID,
		RoutineStartDate:      m.RoutineStartDate,
		LastMembershipPayment: m.LastMembershipPayment,
		IsActive:              m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// scanClient scans one client row in clientColumns order.
func scanClient(row pgx.Row) (*domain.Client, error) {
	var m models.Client
	var routineID sql.NullString
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.JoinDate,
		&m.Status,
		&m.Balance,
		&m.Plan,
		&m.Points,
		&m.Level,
		&m.Streak,
		&m.LastVisit,
		&m.BirthDate,
		&m.EmergencyContact,
		&routineID,
		&m.RoutineStartDate,
		&m.LastMembershipPayment,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if routineID.Valid {
		m.AssignedRoutineID = routineID.String
	}
	d := toDomainClient(m)
	return &d, nil
}

func scanClientRows(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()
	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

const insertClientQuery = `
	INSERT INTO clients (` + clientColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
`

func insertClientArgs(m models.Client) []any {
	var routineID sql.NullString
	if m.AssignedRoutineID != "" {
		routineID = sql.NullString{String: m.AssignedRoutineID, Valid: true}
	}
	return []any{
		m.ClientID, m.Name, m.Email, m.Phone, m.JoinDate, m.Status, m.Balance,
		m.Plan, m.Points, m.Level, m.Streak, m.LastVisit, m.BirthDate,
		m.EmergencyContact, routineID, m.RoutineStartDate, m.LastMembershipPayment,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	_, err := r.Pool.Exec(ctx, insertClientQuery, insertClientArgs(m)...)
	return translateClientInsertErr(err, m.ClientID)
}

// SaveClientInTx inserts a new client within a caller-owned transaction.
func (r *PgxClientRepository) SaveClientInTx(ctx context.Context, tx pgx.Tx, client domain.Client) error {
	m := toModelClient(client)
	_, err := tx.Exec(ctx, insertClientQuery, insertClientArgs(m)...)
	return translateClientInsertErr(err, m.ClientID)
}

func translateClientInsertErr(err error, clientID string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, clientID)
	}
	return fmt.Errorf("failed to save client %s: %w", clientID, err)
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	return client, nil
}

// ListClients retrieves a paginated list of active clients, optionally
// filtered by a case-insensitive name or email match.
func (r *PgxClientRepository) ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	return scanClientRows(rows)
}

// ListDebtors retrieves active clients with a negative balance, largest debt first.
func (r *PgxClientRepository) ListDebtors(ctx context.Context) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE AND balance < 0
		ORDER BY balance ASC, name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query debtors: %w", err)
	}
	return scanClientRows(rows)
}

// ListAbsentSince retrieves active clients whose last visit is before the
// cutoff, or who never visited.
func (r *PgxClientRepository) ListAbsentSince(ctx context.Context, cutoff time.Time) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE AND (last_visit IS NULL OR last_visit < $1)
		ORDER BY last_visit ASC NULLS FIRST, name;
	`
	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query absent clients: %w", err)
	}
	return scanClientRows(rows)
}

// ListBirthdaysInMonth retrieves active clients whose birthday falls in the month.
func (r *PgxClientRepository) ListBirthdaysInMonth(ctx context.Context, month time.Month) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE AND birth_date IS NOT NULL AND EXTRACT(MONTH FROM birth_date) = $1
		ORDER BY EXTRACT(DAY FROM birth_date), name;
	`
	rows, err := r.Pool.Query(ctx, query, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to query birthdays: %w", err)
	}
	return scanClientRows(rows)
}

// UpdateClient updates an existing client's details. The balance column is
// not written here; it only moves through UpdateClientBalanceInTx.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)

	var routineID sql.NullString
	if m.AssignedRoutineID != "" {
		routineID = sql.NullString{String: m.AssignedRoutineID, Valid: true}
	}

	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, status = $5, plan = $6,
		    points = $7, level = $8, streak = $9, last_visit = $10,
		    birth_date = $11, emergency_contact = $12, assigned_routine_id = $13,
		    routine_start_date = $14, is_active = $15,
		    last_updated_at = $16, last_updated_by = $17
		WHERE client_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ClientID, m.Name, m.Email, m.Phone, m.Status, m.Plan,
		m.Points, m.Level, m.Streak, m.LastVisit,
		m.BirthDate, m.EmergencyContact, routineID,
		m.RoutineStartDate, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update client %s: %w", m.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %s", apperrors.ErrNotFound, m.ClientID)
	}
	return nil
}

// DeactivateClient marks a client as inactive.
func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, status = 'INACTIVE', last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindClientByID(ctx, clientID); findErr != nil {
			return findErr
		}
		// Exists but already inactive.
		return fmt.Errorf("%w: client %s is already inactive", apperrors.ErrValidation, clientID)
	}
	return nil
}

// FindClientByIDForUpdate retrieves a client and locks the row for update.
// Must be called within a transaction.
func (r *PgxClientRepository) FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 FOR UPDATE;`
	client, err := scanClient(tx.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to lock client %s for update: %w", clientID, err)
	}
	return client, nil
}

// UpdateClientBalanceInTx writes a client's new balance within a transaction.
func (r *PgxClientRepository) UpdateClientBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE client_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, clientID, newBalance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %s not found during balance update", apperrors.ErrNotFound, clientID)
	}
	return nil
}

// UpdateMembershipPaidInTx stamps the last membership payment date.
func (r *PgxClientRepository) UpdateMembershipPaidInTx(ctx context.Context, tx pgx.Tx, clientID string, paidAt time.Time, userID string) error {
	query := `
		UPDATE clients
		SET last_membership_payment = $2, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, clientID, paidAt, userID)
	if err != nil {
		return fmt.Errorf("failed to stamp membership payment for client %s: %w", clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %s not found during payment stamp", apperrors.ErrNotFound, clientID)
	}
	return nil
}
