package dto

import (
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// CreateStaffRequest defines the data needed to create a staff account.
type CreateStaffRequest struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=8"`
	Role     domain.StaffRole `json:"role" binding:"required,oneof=ADMIN INSTRUCTOR"`
}

// UpdateStaffRequest defines the data allowed for updating a staff account.
type UpdateStaffRequest struct {
	Name     *string           `json:"name"`
	Role     *domain.StaffRole `json:"role" binding:"omitempty,oneof=ADMIN INSTRUCTOR"`
	Password *string           `json:"password" binding:"omitempty,min=8"`
}

// StaffResponse defines the data returned for a staff member.
// The password hash never leaves the domain type.
type StaffResponse struct {
	StaffID   string           `json:"staffID"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.StaffRole `json:"role"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ToStaffResponse converts a domain.Staff to StaffResponse DTO
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:   s.StaffID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ToListStaffResponse converts a slice of domain.Staff to DTOs
func ToListStaffResponse(staff []domain.Staff) []StaffResponse {
	res := make([]StaffResponse, len(staff))
	for i := range staff {
		res[i] = ToStaffResponse(&staff[i])
	}
	return res
}
