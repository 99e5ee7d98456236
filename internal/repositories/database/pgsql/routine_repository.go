package pgsql

import (
	"context"
	"encoding/json"
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

const routineColumns = `routine_id, name, difficulty, description, exercises, created_at, created_by, last_updated_at, last_updated_by`

type PgxRoutineRepository struct {
	BaseRepository
}

// newPgxRoutineRepository creates a new repository for routine data.
func newPgxRoutineRepository(pool *pgxpool.Pool) portsrepo.RoutineRepositoryFacade {
	return &PgxRoutineRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RoutineRepositoryFacade = (*PgxRoutineRepository)(nil)

func toModelRoutine(d domain.Routine) (models.Routine, error) {
	exercisesJSON, err := json.Marshal(d.Exercises)
	if err != nil {
		return models.Routine{}, fmt.Errorf("failed to encode exercises: %w", err)
	}
	return models.Routine{
		RoutineID:     d.RoutineID,
		Name:          d.Name,
		Difficulty:    string(d.Difficulty),
		Description:   d.Description,
		ExercisesJSON: exercisesJSON,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

func toDomainRoutine(m models.Routine) (domain.Routine, error) {
	var exercises []domain.Exercise
	if len(m.ExercisesJSON) > 0 {
		if err := json.Unmarshal(m.ExercisesJSON, &exercises); err != nil {
			return domain.Routine{}, fmt.Errorf("failed to decode exercises for routine %s: %w", m.RoutineID, err)
		}
	}
	return domain.Routine{
		RoutineID:   m.RoutineID,
		Name:        m.Name,
		Difficulty:  domain.RoutineDifficulty(m.Difficulty),
		Description: m.Description,
		Exercises:   exercises,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

func scanRoutine(row pgx.Row) (*domain.Routine, error) {
	var m models.Routine
	err := row.Scan(
		&m.RoutineID,
		&m.Name,
		&m.Difficulty,
		&m.Description,
		&m.ExercisesJSON,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := toDomainRoutine(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveRoutine inserts a new routine.
func (r *PgxRoutineRepository) SaveRoutine(ctx context.Context, routine domain.Routine) error {
	m, err := toModelRoutine(routine)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO routines (` + routineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.RoutineID, m.Name, m.Difficulty, m.Description, m.ExercisesJSON,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: routine with ID %s already exists", apperrors.ErrDuplicate, m.RoutineID)
		}
		return fmt.Errorf("failed to save routine %s: %w", m.RoutineID, err)
	}
	return nil
}

// FindRoutineByID retrieves a routine by its ID.
func (r *PgxRoutineRepository) FindRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE routine_id = $1;`
	routine, err := scanRoutine(r.Pool.QueryRow(ctx, query, routineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: routine %s", apperrors.ErrNotFound, routineID)
		}
		return nil, fmt.Errorf("failed to find routine by ID %s: %w", routineID, err)
	}
	return routine, nil
}

// ListRoutines retrieves all routines ordered by name.
func (r *PgxRoutineRepository) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query routines: %w", err)
	}
	defer rows.Close()

	routines := []domain.Routine{}
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan routine row: %w", err)
		}
		routines = append(routines, *routine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routine rows: %w", err)
	}
	return routines, nil
}

// UpdateRoutine updates an existing routine.
func (r *PgxRoutineRepository) UpdateRoutine(ctx context.Context, routine domain.Routine) error {
	m, err := toModelRoutine(routine)
	if err != nil {
		return err
	}
	query := `
		UPDATE routines
		SET name = $2, difficulty = $3, description = $4, exercises = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE routine_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.RoutineID, m.Name, m.Difficulty, m.Description, m.ExercisesJSON,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update routine %s: %w", m.RoutineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: routine %s", apperrors.ErrNotFound, m.RoutineID)
	}
	return nil
}

// DeleteRoutine removes a routine. Clients referencing it keep their start
// date; the foreign key nulls the reference.
func (r *PgxRoutineRepository) DeleteRoutine(ctx context.Context, routineID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM routines WHERE routine_id = $1;`, routineID)
	if err != nil {
		return fmt.Errorf("failed to delete routine %s: %w", routineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: routine %s", apperrors.ErrNotFound, routineID)
	}
	return nil
}

// AssignRoutine sets a client's routine and cycle start date.
func (r *PgxRoutineRepository) AssignRoutine(ctx context.Context, clientID string, routineID string, startDate time.Time, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET assigned_routine_id = $2, routine_start_date = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE client_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, routineID, startDate, now, userID)
	if err != nil {
		return fmt.Errorf("failed to assign routine %s to client %s: %w", routineID, clientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
	}
	return nil
}
