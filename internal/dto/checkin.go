package dto

import (
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// CheckInRequest identifies the client entering the gym.
type CheckInRequest struct {
	ClientID string `json:"clientID" binding:"required"`
}

// CheckInResponse defines the data returned for a check-in.
type CheckInResponse struct {
	CheckInID         string     `json:"checkInID"`
	ClientID          string     `json:"clientID"`
	ClientName        string     `json:"clientName"`
	Timestamp         time.Time  `json:"timestamp"`
	CheckoutTimestamp *time.Time `json:"checkoutTimestamp,omitempty"`
}

// ToCheckInResponse converts a domain.CheckIn to CheckInResponse DTO
func ToCheckInResponse(c *domain.CheckIn) CheckInResponse {
	return CheckInResponse{
		CheckInID:         c.CheckInID,
		ClientID:          c.ClientID,
		ClientName:        c.ClientName,
		Timestamp:         c.Timestamp,
		CheckoutTimestamp: c.CheckoutTimestamp,
	}
}

// ToListCheckInResponse converts a slice of domain.CheckIn to DTOs
func ToListCheckInResponse(checkIns []domain.CheckIn) []CheckInResponse {
	res := make([]CheckInResponse, len(checkIns))
	for i := range checkIns {
		res[i] = ToCheckInResponse(&checkIns[i])
	}
	return res
}

// OccupancyResponse reports how many clients are currently on the floor.
type OccupancyResponse struct {
	Current int       `json:"current"`
	AsOf    time.Time `json:"asOf"`
}
