package repositories

import (
	"context"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
)

// SettingsRepositoryFacade defines persistence for the single gym settings row,
// which carries the plan price catalog.
type SettingsRepositoryFacade interface {
	// GetSettings retrieves the gym settings, returning defaults when the row
	// has never been written.
	GetSettings(ctx context.Context) (*domain.GymSettings, error)

	// SaveSettings upserts the gym settings row.
	SaveSettings(ctx context.Context, settings domain.GymSettings) error
}
