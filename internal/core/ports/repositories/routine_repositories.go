package repositories

import (
	"context"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// RoutineReader defines read operations for routine data
type RoutineReader interface {
	// FindRoutineByID retrieves a specific routine by its unique identifier.
	FindRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error)

	// ListRoutines retrieves all routines.
	ListRoutines(ctx context.Context) ([]domain.Routine, error)
}

// RoutineWriter defines write operations for routine data
type RoutineWriter interface {
	// SaveRoutine persists a new routine.
	SaveRoutine(ctx context.Context, routine domain.Routine) error

	// UpdateRoutine updates an existing routine.
	UpdateRoutine(ctx context.Context, routine domain.Routine) error

	// DeleteRoutine removes a routine.
	DeleteRoutine(ctx context.Context, routineID string) error

	// AssignRoutine sets a client's routine and cycle start date.
	AssignRoutine(ctx context.Context, clientID string, routineID string, startDate time.Time, userID string, now time.Time) error
}

// RoutineRepositoryFacade combines all routine repository interfaces
type RoutineRepositoryFacade interface {
	RoutineReader
	RoutineWriter
}
