package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
)

const (
	pointsPerVisit = 10
	silverAt       = 500
	goldAt         = 1000
)

// checkinService manages floor access, occupancy and the visit streak.
type checkinService struct {
	BaseService
	checkInRepo portsrepo.CheckInRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
}

// NewCheckInService creates a new CheckInService.
func NewCheckInService(checkInRepo portsrepo.CheckInRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.CheckInSvcFacade {
	return &checkinService{
		checkInRepo: checkInRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.CheckInSvcFacade = (*checkinService)(nil)

// levelForPoints derives the loyalty tier from accumulated points.
func levelForPoints(points int) domain.ClientLevel {
	switch {
	case points >= goldAt:
		return domain.LevelGold
	case points >= silverAt:
		return domain.LevelSilver
	default:
		return domain.LevelBronze
	}
}

// RegisterCheckIn records a client entering the gym. Each visit awards loyalty
// points and advances the streak when the previous visit was within the last
// two days; a longer gap restarts the streak at one. A second check-in while
// one is still open is rejected.
func (s *checkinService) RegisterCheckIn(ctx context.Context, clientID string, userID string) (*domain.CheckIn, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client %s is archived", apperrors.ErrValidation, clientID)
	}

	open, err := s.checkInRepo.FindOpenCheckIn(ctx, clientID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up open check-in: %w", err)
	}
	now := time.Now().UTC()
	if open != nil && open.CountsTowardOccupancy(now) {
		return nil, fmt.Errorf("%w: client %s is already checked in", apperrors.ErrDuplicate, clientID)
	}

	checkIn := domain.CheckIn{
		CheckInID:  uuid.NewString(),
		ClientID:   clientID,
		ClientName: client.Name,
		Timestamp:  now,
	}
	if err := s.checkInRepo.SaveCheckIn(ctx, checkIn); err != nil {
		s.LogError(ctx, err, "Failed to save check-in", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	// Gamification: first visit of the day moves points and streak forward.
	sameDay := client.LastVisit != nil && client.LastVisit.UTC().Truncate(24*time.Hour).Equal(now.Truncate(24*time.Hour))
	if !sameDay {
		client.Points += pointsPerVisit
		client.Level = levelForPoints(client.Points)
		if client.LastVisit != nil && now.Sub(*client.LastVisit) <= 48*time.Hour {
			client.Streak++
		} else {
			client.Streak = 1
		}
	}
	client.LastVisit = &now
	client.LastUpdatedAt = now
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		// The check-in row already exists; the visit stats update is best effort.
		s.LogError(ctx, err, "Failed to update visit stats after check-in", slog.String("client_id", clientID))
	}

	return &checkIn, nil
}

// RegisterCheckout closes a client's open check-in.
func (s *checkinService) RegisterCheckout(ctx context.Context, clientID string) error {
	open, err := s.checkInRepo.FindOpenCheckIn(ctx, clientID)
	if err != nil {
		return err
	}
	return s.checkInRepo.SetCheckout(ctx, open.CheckInID, time.Now().UTC())
}

// CurrentOccupancy counts clients still on the floor: open check-ins from the
// last two hours. Older ones are assumed to have left without checking out.
func (s *checkinService) CurrentOccupancy(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	recent, err := s.checkInRepo.ListCheckInsSince(ctx, now.Add(-domain.OccupancyWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to list recent check-ins: %w", err)
	}
	count := 0
	for _, c := range recent {
		if c.CountsTowardOccupancy(now) {
			count++
		}
	}
	return count, nil
}

// ListRecentCheckIns retrieves today's check-ins, newest first.
func (s *checkinService) ListRecentCheckIns(ctx context.Context) ([]domain.CheckIn, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.checkInRepo.ListCheckInsSince(ctx, startOfDay)
}
