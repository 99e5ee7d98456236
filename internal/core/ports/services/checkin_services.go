package services

import (
	"context"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// CheckInSvcFacade manages floor access and occupancy.
type CheckInSvcFacade interface {
	// RegisterCheckIn records a client entering the gym, updating their visit
	// streak and last-visit stamp.
	RegisterCheckIn(ctx context.Context, clientID string, userID string) (*domain.CheckIn, error)

	// RegisterCheckout closes a client's open check-in.
	RegisterCheckout(ctx context.Context, clientID string) error

	// CurrentOccupancy counts clients still on the floor right now.
	CurrentOccupancy(ctx context.Context) (int, error)

	// ListRecentCheckIns retrieves today's check-ins, newest first.
	ListRecentCheckIns(ctx context.Context) ([]domain.CheckIn, error)
}
