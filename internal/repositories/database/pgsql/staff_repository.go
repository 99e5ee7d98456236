package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/models"
)

const staffColumns = `staff_id, name, email, role, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for staff data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

func toModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:      d.StaffID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         string(d.Role),
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:      m.StaffID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         domain.StaffRole(m.Role),
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var m models.Staff
	err := row.Scan(
		&m.StaffID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.PasswordHash,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainStaff(m)
	return &d, nil
}

// SaveStaff inserts a new staff account.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	m := toModelStaff(staff)
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StaffID, m.Name, m.Email, m.Role, m.PasswordHash, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: staff with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save staff %s: %w", m.StaffID, err)
	}
	return nil
}

// FindStaffByID retrieves a staff member by ID.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE staff_id = $1;`
	staff, err := scanStaff(r.Pool.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: staff %s", apperrors.ErrNotFound, staffID)
		}
		return nil, fmt.Errorf("failed to find staff by ID %s: %w", staffID, err)
	}
	return staff, nil
}

// FindStaffByEmail retrieves a staff member by email. Emails are stored
// lowercased so the lookup is case insensitive.
func (r *PgxStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = LOWER($1);`
	staff, err := scanStaff(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: staff with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find staff by email: %w", err)
	}
	return staff, nil
}

// ListStaff retrieves all staff members ordered by name.
func (r *PgxStaffRepository) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	staff := []domain.Staff{}
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		staff = append(staff, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", err)
	}
	return staff, nil
}

// UpdateStaff updates a staff member's details. The password hash is written
// as given; callers re-hash before reaching this layer.
func (r *PgxStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	m := toModelStaff(staff)
	query := `
		UPDATE staff
		SET name = $2, email = $3, role = $4, password_hash = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE staff_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.StaffID, m.Name, m.Email, m.Role, m.PasswordHash, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: staff with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to execute update staff %s: %w", m.StaffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: staff %s", apperrors.ErrNotFound, m.StaffID)
	}
	return nil
}

// DeactivateStaff marks a staff account inactive without removing it.
func (r *PgxStaffRepository) DeactivateStaff(ctx context.Context, staffID string, userID string, now time.Time) error {
	query := `
		UPDATE staff
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE staff_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, staffID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate staff %s: %w", staffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: staff %s", apperrors.ErrNotFound, staffID)
	}
	return nil
}
