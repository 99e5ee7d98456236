package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/models"
)

const checkinColumns = `checkin_id, client_id, client_name, timestamp, checkout_timestamp`

type PgxCheckInRepository struct {
	BaseRepository
}

// newPgxCheckInRepository creates a new repository for check-in data.
func newPgxCheckInRepository(pool *pgxpool.Pool) portsrepo.CheckInRepositoryFacade {
	return &PgxCheckInRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CheckInRepositoryFacade = (*PgxCheckInRepository)(nil)

func toDomainCheckIn(m models.CheckIn) domain.CheckIn {
	return domain.CheckIn{
		CheckInID:         m.CheckInID,
		ClientID:          m.ClientID,
		ClientName:        m.ClientName,
		Timestamp:         m.Timestamp,
		CheckoutTimestamp: m.CheckoutTimestamp,
	}
}

func scanCheckIn(row pgx.Row) (*domain.CheckIn, error) {
	var m models.CheckIn
	if err := row.Scan(&m.CheckInID, &m.ClientID, &m.ClientName, &m.Timestamp, &m.CheckoutTimestamp); err != nil {
		return nil, err
	}
	d := toDomainCheckIn(m)
	return &d, nil
}

// SaveCheckIn inserts a new check-in.
func (r *PgxCheckInRepository) SaveCheckIn(ctx context.Context, checkIn domain.CheckIn) error {
	query := `
		INSERT INTO checkins (` + checkinColumns + `)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		checkIn.CheckInID,
		checkIn.ClientID,
		checkIn.ClientName,
		checkIn.Timestamp,
		checkIn.CheckoutTimestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save check-in %s: %w", checkIn.CheckInID, err)
	}
	return nil
}

// FindOpenCheckIn retrieves a client's most recent check-in without a checkout.
func (r *PgxCheckInRepository) FindOpenCheckIn(ctx context.Context, clientID string) (*domain.CheckIn, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE client_id = $1 AND checkout_timestamp IS NULL
		ORDER BY timestamp DESC
		LIMIT 1;
	`
	checkIn, err := scanCheckIn(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no open check-in for client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to find open check-in for client %s: %w", clientID, err)
	}
	return checkIn, nil
}

// ListCheckInsSince retrieves check-ins on or after the given instant, newest first.
func (r *PgxCheckInRepository) ListCheckInsSince(ctx context.Context, since time.Time) ([]domain.CheckIn, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE timestamp >= $1
		ORDER BY timestamp DESC;
	`
	rows, err := r.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := []domain.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in row: %w", err)
		}
		checkIns = append(checkIns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-in rows: %w", err)
	}
	return checkIns, nil
}

// CountVisitsSince counts a client's check-ins on or after the given instant.
func (r *PgxCheckInRepository) CountVisitsSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM checkins WHERE client_id = $1 AND timestamp >= $2;`
	if err := r.Pool.QueryRow(ctx, query, clientID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits for client %s: %w", clientID, err)
	}
	return count, nil
}

// SetCheckout stamps the checkout time on an open check-in.
func (r *PgxCheckInRepository) SetCheckout(ctx context.Context, checkInID string, at time.Time) error {
	query := `
		UPDATE checkins
		SET checkout_timestamp = $2
		WHERE checkin_id = $1 AND checkout_timestamp IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, checkInID, at)
	if err != nil {
		return fmt.Errorf("failed to set checkout for check-in %s: %w", checkInID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: check-in %s not found or already closed", apperrors.ErrNotFound, checkInID)
	}
	return nil
}
