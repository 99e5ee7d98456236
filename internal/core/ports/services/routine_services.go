package services

import (
	"context"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// RoutineSvcFacade manages workout routines and their assignment to clients.
type RoutineSvcFacade interface {
	// GetRoutineByID retrieves a specific routine.
	GetRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error)

	// ListRoutines retrieves all routines.
	ListRoutines(ctx context.Context) ([]domain.Routine, error)

	// CreateRoutine persists a new routine.
	CreateRoutine(ctx context.Context, req dto.CreateRoutineRequest, userID string) (*domain.Routine, error)

	// UpdateRoutine updates an existing routine.
	UpdateRoutine(ctx context.Context, routineID string, req dto.UpdateRoutineRequest, userID string) (*domain.Routine, error)

	// DeleteRoutine removes a routine.
	DeleteRoutine(ctx context.Context, routineID string) error

	// AssignRoutine sets a client's routine and restarts their 7-day cycle.
	AssignRoutine(ctx context.Context, clientID string, req dto.AssignRoutineRequest, userID string) error

	// ClientRoutineDay resolves which day of the 7-day cycle a client is on at
	// the given instant. Day 1 when no cycle start is recorded.
	ClientRoutineDay(ctx context.Context, clientID string, now time.Time) (int, error)
}
