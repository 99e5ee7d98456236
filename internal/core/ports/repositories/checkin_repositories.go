package repositories

import (
	"context"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// CheckInReader defines read operations for check-in data
type CheckInReader interface {
	// FindOpenCheckIn retrieves a client's most recent check-in without a
	// checkout, or nil when the client is not on the floor.
	FindOpenCheckIn(ctx context.Context, clientID string) (*domain.CheckIn, error)

	// ListCheckInsSince retrieves check-ins whose timestamp is on or after the
	// given instant, newest first.
	ListCheckInsSince(ctx context.Context, since time.Time) ([]domain.CheckIn, error)

	// CountVisitsSince counts a client's check-ins on or after the given instant.
	CountVisitsSince(ctx context.Context, clientID string, since time.Time) (int, error)
}

// CheckInWriter defines write operations for check-in data
type CheckInWriter interface {
	// SaveCheckIn persists a new check-in.
	SaveCheckIn(ctx context.Context, checkIn domain.CheckIn) error

	// SetCheckout stamps the checkout time on an open check-in.
	SetCheckout(ctx context.Context, checkInID string, at time.Time) error
}

// CheckInRepositoryFacade combines all check-in repository interfaces
type CheckInRepositoryFacade interface {
	CheckInReader
	CheckInWriter
}
