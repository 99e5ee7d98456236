package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/models"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/utils/pagination"
)

const transactionColumns = `transaction_id, client_id, description, amount, date, type, category, idempotency_key, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		ClientID:       d.ClientID,
		Description:    d.Description,
		Amount:         d.Amount,
		Date:           d.Date,
		Type:           string(d.Type),
		Category:       d.Category,
		IdempotencyKey: d.IdempotencyKey,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		ClientID:       m.ClientID,
		Description:    m.Description,
		Amount:         m.Amount,
		Date:           m.Date,
		Type:           domain.TransactionType(m.Type),
		Category:       m.Category,
		IdempotencyKey: m.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	var clientID sql.NullString
	var idemKey sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&clientID,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.Type,
		&m.Category,
		&idemKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if clientID.Valid {
		m.ClientID = clientID.String
	}
	if idemKey.Valid {
		m.IdempotencyKey = idemKey.String
	}
	d := toDomainTransaction(m)
	return &d, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func insertTransactionArgs(m models.Transaction) []any {
	var clientID sql.NullString
	if m.ClientID != "" {
		clientID = sql.NullString{String: m.ClientID, Valid: true}
	}
	var idemKey sql.NullString
	if m.IdempotencyKey != "" {
		idemKey = sql.NullString{String: m.IdempotencyKey, Valid: true}
	}
	return []any{
		m.TransactionID, clientID, m.Description, m.Amount, m.Date,
		m.Type, m.Category, idemKey,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func translateTransactionInsertErr(err error, transactionID string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// Either the primary key or the idempotency key index fired.
		return fmt.Errorf("%w: transaction %s or its idempotency key already recorded", apperrors.ErrDuplicate, transactionID)
	}
	return fmt.Errorf("failed to save transaction %s: %w", transactionID, err)
}

// SaveTransaction inserts a standalone ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...)
	return translateTransactionInsertErr(err, m.TransactionID)
}

// SaveTransactionInTx inserts a ledger entry within a caller-owned transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := tx.Exec(ctx, insertTransactionQuery, insertTransactionArgs(m)...)
	return translateTransactionInsertErr(err, m.TransactionID)
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionByIdempotencyKey retrieves the entry recorded under a key.
func (r *PgxTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE idempotency_key = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no transaction under idempotency key", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction by idempotency key: %w", err)
	}
	return txn, nil
}

// listPage runs a token-paginated query over the transactions table. The
// cursor is (date, created_at) descending; one extra row is fetched to decide
// whether a next page exists.
func (r *PgxTransactionRepository) listPage(ctx context.Context, filterClause string, filterArgs []any, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	args := append([]any{}, filterArgs...)
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		if filterClause == "" {
			query += "WHERE "
		} else {
			query += " AND "
		}
		query += "(date, created_at) < ($" + strconv.Itoa(len(args)+1) + ", $" + strconv.Itoa(len(args)+2) + ")"
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", scanErr)
		}
		results = append(results, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}
	return results, nextTokenVal, nil
}

// ListTransactions retrieves a page of ledger entries, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.listPage(ctx, "", nil, limit, nextToken)
}

// ListTransactionsByClientID retrieves a page of one client's ledger entries.
func (r *PgxTransactionRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.listPage(ctx, "WHERE client_id = $1", []any{clientID}, limit, nextToken)
}

// SumByTypeSince totals transaction amounts per type since the given instant.
func (r *PgxTransactionRepository) SumByTypeSince(ctx context.Context, since time.Time) (map[domain.TransactionType]decimal.Decimal, error) {
	query := `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE date >= $1
		GROUP BY type;
	`
	rows, err := r.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to total transactions: %w", err)
	}
	defer rows.Close()

	sums := map[domain.TransactionType]decimal.Decimal{
		domain.Income:  decimal.Zero,
		domain.Expense: decimal.Zero,
	}
	for rows.Next() {
		var txnType string
		var total decimal.Decimal
		if err := rows.Scan(&txnType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan transaction totals: %w", err)
		}
		sums[domain.TransactionType(txnType)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction totals: %w", err)
	}
	return sums, nil
}

// DeleteTransaction removes a ledger entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
