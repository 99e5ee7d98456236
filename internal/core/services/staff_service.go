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
	"github.com/padelchilecito-gestion/Sistema-gym/internal/utils"
)

// staffService manages staff accounts.
type staffService struct {
	BaseService
	staffRepo portsrepo.StaffRepositoryFacade
}

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade) portssvc.StaffSvcFacade {
	return &staffService{staffRepo: staffRepo}
}

var _ portssvc.StaffSvcFacade = (*staffService)(nil)

// GetStaffByID retrieves a specific staff member.
func (s *staffService) GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	return s.staffRepo.FindStaffByID(ctx, staffID)
}

// ListStaff retrieves all staff members.
func (s *staffService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.staffRepo.ListStaff(ctx)
}

// CreateStaff persists a new staff member. Only the bcrypt hash of the
// password is ever stored.
func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, userID string) (*domain.Staff, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	staff := domain.Staff{
		StaffID:      uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		s.LogError(ctx, err, "Failed to save staff member")
		return nil, fmt.Errorf("failed to save staff member: %w", err)
	}
	return &staff, nil
}

// UpdateStaff updates an existing staff member's details.
func (s *staffService) UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, userID string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		staff.PasswordHash = hash
	}

	now := time.Now().UTC()
	staff.LastUpdatedAt = now
	staff.LastUpdatedBy = userID

	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		s.LogError(ctx, err, "Failed to update staff member", slog.String("staff_id", staffID))
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return staff, nil
}

// DeactivateStaff marks a staff member as inactive.
func (s *staffService) DeactivateStaff(ctx context.Context, staffID string, userID string) error {
	now := time.Now().UTC()
	if err := s.staffRepo.DeactivateStaff(ctx, staffID, userID, now); err != nil {
		return err
	}
	s.LogInfo(ctx, "Staff member deactivated", slog.String("staff_id", staffID))
	return nil
}
