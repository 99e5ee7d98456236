package services

import (
	"context"
	"fmt"
	"time"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
)

// rescueAbsence is how long a client can stay away before landing on the
// rescue list.
const rescueAbsence = 15 * 24 * time.Hour

// marketingService surfaces the retention lists shown on the dashboard.
type marketingService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewMarketingService creates a new MarketingService.
func NewMarketingService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.MarketingSvcFacade {
	return &marketingService{clientRepo: clientRepo}
}

var _ portssvc.MarketingSvcFacade = (*marketingService)(nil)

// RescueList retrieves active clients who have not visited in over 15 days,
// including those who never visited at all.
func (s *marketingService) RescueList(ctx context.Context, now time.Time) ([]domain.Client, error) {
	cutoff := now.Add(-rescueAbsence)
	clients, err := s.clientRepo.ListAbsentSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list absent clients: %w", err)
	}
	return clients, nil
}

// BirthdayList retrieves active clients with a birthday in the given month.
func (s *marketingService) BirthdayList(ctx context.Context, month time.Month) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListBirthdaysInMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	return clients, nil
}
