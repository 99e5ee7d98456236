package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// EnrollClientRequest defines the data needed to enroll a new client.
type EnrollClientRequest struct {
	Name             string          `json:"name" binding:"required"`
	Email            string          `json:"email" binding:"omitempty,email"`
	Phone            string          `json:"phone"`
	Plan             string          `json:"plan" binding:"required"`
	InitialBalance   decimal.Decimal `json:"initialBalance"` // Optional, carried-over credit or debt
	BirthDate        *time.Time      `json:"birthDate"`
	EmergencyContact string          `json:"emergencyContact"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	Name             *string                  `json:"name"`
	Email            *string                  `json:"email" binding:"omitempty,email"`
	Phone            *string                  `json:"phone"`
	Plan             *string                  `json:"plan"`
	Status           *domain.MembershipStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE PENDING"`
	BirthDate        *time.Time               `json:"birthDate"`
	EmergencyContact *string                  `json:"emergencyContact"`
}

// ClientResponse defines the data returned for a client.
// Mirrors domain.Client.
type ClientResponse struct {
	ClientID              string                  `json:"clientID"`
	Name                  string                  `json:"name"`
	Email                 string                  `json:"email"`
	Phone                 string                  `json:"phone"`
	JoinDate              time.Time               `json:"joinDate"`
	Status                domain.MembershipStatus `json:"status"`
	Balance               decimal.Decimal         `json:"balance"`
	Debt                  decimal.Decimal         `json:"debt"`
	Plan                  string                  `json:"plan"`
	Points                int                     `json:"points"`
	Level                 domain.ClientLevel      `json:"level"`
	Streak                int                     `json:"streak"`
	LastVisit             *time.Time              `json:"lastVisit"`
	BirthDate             *time.Time              `json:"birthDate"`
	EmergencyContact      string                  `json:"emergencyContact"`
	AssignedRoutineID     string                  `json:"assignedRoutineID"`
	RoutineStartDate      *time.Time              `json:"routineStartDate"`
	LastMembershipPayment *time.Time              `json:"lastMembershipPayment"`
	IsActive              bool                    `json:"isActive"`
	CreatedAt             time.Time               `json:"createdAt"`
	LastUpdatedAt         time.Time               `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:              c.ClientID,
		Name:                  c.Name,
		Email:                 c.Email,
		Phone:                 c.Phone,
		JoinDate:              c.JoinDate,
		Status:                c.Status,
		Balance:               c.Balance.Value,
		Debt:                  c.Balance.Debt(),
		Plan:                  c.Plan,
		Points:                c.Points,
		Level:                 c.Level,
		Streak:                c.Streak,
		LastVisit:             c.LastVisit,
		BirthDate:             c.BirthDate,
		EmergencyContact:      c.EmergencyContact,
		AssignedRoutineID:     c.AssignedRoutineID,
		RoutineStartDate:      c.RoutineStartDate,
		LastMembershipPayment: c.LastMembershipPayment,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		LastUpdatedAt:         c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to a slice of ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// DebtorsResponse wraps the delinquency report.
type DebtorsResponse struct {
	Debtors   []ClientResponse `json:"debtors"`
	TotalOwed decimal.Decimal  `json:"totalOwed"`
}
