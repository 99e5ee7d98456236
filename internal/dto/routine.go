package dto

import (
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// ExerciseInput describes one exercise within a routine request.
type ExerciseInput struct {
	Name    string `json:"name" binding:"required"`
	Machine string `json:"machine"`
	Sets    int    `json:"sets" binding:"required,gt=0"`
	Reps    string `json:"reps" binding:"required"`
	Notes   string `json:"notes"`
}

// CreateRoutineRequest defines the data needed to create a routine.
type CreateRoutineRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Difficulty  domain.RoutineDifficulty `json:"difficulty" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Description string                   `json:"description"`
	Exercises   []ExerciseInput          `json:"exercises" binding:"required,min=1,dive"`
}

// UpdateRoutineRequest defines the data allowed for updating a routine.
type UpdateRoutineRequest struct {
	Name        *string                   `json:"name"`
	Difficulty  *domain.RoutineDifficulty `json:"difficulty" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Description *string                   `json:"description"`
	Exercises   []ExerciseInput           `json:"exercises" binding:"omitempty,min=1,dive"`
}

// AssignRoutineRequest assigns a routine to a client and restarts their cycle.
type AssignRoutineRequest struct {
	RoutineID string     `json:"routineID" binding:"required"`
	StartDate *time.Time `json:"startDate"` // Defaults to now
}

// RoutineResponse defines the data returned for a routine.
type RoutineResponse struct {
	RoutineID   string                   `json:"routineID"`
	Name        string                   `json:"name"`
	Difficulty  domain.RoutineDifficulty `json:"difficulty"`
	Description string                   `json:"description"`
	Exercises   []domain.Exercise        `json:"exercises"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// ToRoutineResponse converts a domain.Routine to RoutineResponse DTO
func ToRoutineResponse(r *domain.Routine) RoutineResponse {
	return RoutineResponse{
		RoutineID:   r.RoutineID,
		Name:        r.Name,
		Difficulty:  r.Difficulty,
		Description: r.Description,
		Exercises:   r.Exercises,
		CreatedAt:   r.CreatedAt,
	}
}

// ToListRoutineResponse converts a slice of domain.Routine to DTOs
func ToListRoutineResponse(routines []domain.Routine) []RoutineResponse {
	res := make([]RoutineResponse, len(routines))
	for i := range routines {
		res[i] = ToRoutineResponse(&routines[i])
	}
	return res
}

// RoutineDayResponse reports which day of the weekly cycle a client is on.
type RoutineDayResponse struct {
	ClientID string `json:"clientID"`
	Day      int    `json:"day"`
}
