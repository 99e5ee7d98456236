package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// routineService manages workout routines and their assignment to clients.
type routineService struct {
	BaseService
	routineRepo portsrepo.RoutineRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
}

// NewRoutineService creates a new RoutineService.
func NewRoutineService(routineRepo portsrepo.RoutineRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.RoutineSvcFacade {
	return &routineService{
		routineRepo: routineRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.RoutineSvcFacade = (*routineService)(nil)

func exercisesFromInput(inputs []dto.ExerciseInput) []domain.Exercise {
	exercises := make([]domain.Exercise, len(inputs))
	for i, in := range inputs {
		exercises[i] = domain.Exercise{
			ExerciseID: uuid.NewString(),
			Name:       in.Name,
			Machine:    in.Machine,
			Sets:       in.Sets,
			Reps:       in.Reps,
			Notes:      in.Notes,
		}
	}
	return exercises
}

// GetRoutineByID retrieves a specific routine.
func (s *routineService) GetRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error) {
	return s.routineRepo.FindRoutineByID(ctx, routineID)
}

// ListRoutines retrieves all routines.
func (s *routineService) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	return s.routineRepo.ListRoutines(ctx)
}

// CreateRoutine persists a new routine.
func (s *routineService) CreateRoutine(ctx context.Context, req dto.CreateRoutineRequest, userID string) (*domain.Routine, error) {
	now := time.Now().UTC()
	routine := domain.Routine{
		RoutineID:   uuid.NewString(),
		Name:        req.Name,
		Difficulty:  req.Difficulty,
		Description: req.Description,
		Exercises:   exercisesFromInput(req.Exercises),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.routineRepo.SaveRoutine(ctx, routine); err != nil {
		s.LogError(ctx, err, "Failed to save routine")
		return nil, fmt.Errorf("failed to save routine: %w", err)
	}
	return &routine, nil
}

// UpdateRoutine updates an existing routine.
func (s *routineService) UpdateRoutine(ctx context.Context, routineID string, req dto.UpdateRoutineRequest, userID string) (*domain.Routine, error) {
	routine, err := s.routineRepo.FindRoutineByID(ctx, routineID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		routine.Name = *req.Name
	}
	if req.Difficulty != nil {
		routine.Difficulty = *req.Difficulty
	}
	if req.Description != nil {
		routine.Description = *req.Description
	}
	if req.Exercises != nil {
		routine.Exercises = exercisesFromInput(req.Exercises)
	}

	now := time.Now().UTC()
	routine.LastUpdatedAt = now
	routine.LastUpdatedBy = userID

	if err := s.routineRepo.UpdateRoutine(ctx, *routine); err != nil {
		s.LogError(ctx, err, "Failed to update routine", slog.String("routine_id", routineID))
		return nil, fmt.Errorf("failed to update routine: %w", err)
	}
	return routine, nil
}

// DeleteRoutine removes a routine. Clients keep their assignment reference;
// the day query falls back to day 1 semantics only when no start date exists.
func (s *routineService) DeleteRoutine(ctx context.Context, routineID string) error {
	return s.routineRepo.DeleteRoutine(ctx, routineID)
}

// AssignRoutine sets a client's routine and restarts their 7-day cycle.
func (s *routineService) AssignRoutine(ctx context.Context, clientID string, req dto.AssignRoutineRequest, userID string) error {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.routineRepo.FindRoutineByID(ctx, req.RoutineID); err != nil {
		return err
	}

	now := time.Now().UTC()
	startDate := now
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	if err := s.routineRepo.AssignRoutine(ctx, clientID, req.RoutineID, startDate, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to assign routine", slog.String("client_id", clientID), slog.String("routine_id", req.RoutineID))
		return fmt.Errorf("failed to assign routine: %w", err)
	}
	return nil
}

// ClientRoutineDay resolves which day of the 7-day cycle a client is on.
// A client without a recorded cycle start is always on day 1.
func (s *routineService) ClientRoutineDay(ctx context.Context, clientID string, now time.Time) (int, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return 0, err
	}
	if client.RoutineStartDate == nil {
		return 1, nil
	}
	return domain.CurrentRoutineDay(*client.RoutineStartDate, now), nil
}
