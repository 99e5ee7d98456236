package services

import (
	"context"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// StaffSvcFacade manages staff accounts.
type StaffSvcFacade interface {
	// GetStaffByID retrieves a specific staff member.
	GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)

	// ListStaff retrieves all staff members.
	ListStaff(ctx context.Context) ([]domain.Staff, error)

	// CreateStaff persists a new staff member with a hashed password.
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest, userID string) (*domain.Staff, error)

	// UpdateStaff updates an existing staff member's details.
	UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, userID string) (*domain.Staff, error)

	// DeactivateStaff marks a staff member as inactive.
	DeactivateStaff(ctx context.Context, staffID string, userID string) error
}
