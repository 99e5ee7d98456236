package repositories

import (
	"context"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// StaffReader defines read operations for staff data
type StaffReader interface {
	// FindStaffByID retrieves a specific staff member by its unique identifier.
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)

	// FindStaffByEmail retrieves a staff member by email.
	FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)

	// ListStaff retrieves all staff members.
	ListStaff(ctx context.Context) ([]domain.Staff, error)
}

// StaffWriter defines write operations for staff data
type StaffWriter interface {
	// SaveStaff persists a new staff member.
	SaveStaff(ctx context.Context, staff domain.Staff) error

	// UpdateStaff updates an existing staff member's details.
	UpdateStaff(ctx context.Context, staff domain.Staff) error

	// DeactivateStaff marks a staff member as inactive.
	DeactivateStaff(ctx context.Context, staffID string, userID string, now time.Time) error
}

// StaffRepositoryFacade combines all staff repository interfaces
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
