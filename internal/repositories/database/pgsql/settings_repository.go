package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/models"
)

// settingsRowID is the primary key of the single settings row.
const settingsRowID = 1

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for the gym settings row.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// defaultSettings is what GetSettings returns before the row is ever written.
func defaultSettings() *domain.GymSettings {
	return &domain.GymSettings{
		Name:    "Mi Gimnasio",
		Plan:    domain.SubscriptionFull,
		Catalog: domain.NewPlanCatalog(nil),
	}
}

// GetSettings retrieves the gym settings, returning defaults when the row has
// never been written.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.GymSettings, error) {
	query := `
		SELECT id, name, logo_url, plan, membership_prices, created_at, created_by, last_updated_at, last_updated_by
		FROM gym_settings
		WHERE id = $1;
	`
	var m models.GymSettings
	err := r.Pool.QueryRow(ctx, query, settingsRowID).Scan(
		&m.ID,
		&m.Name,
		&m.LogoURL,
		&m.Plan,
		&m.CatalogJSON,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to load gym settings: %w", err)
	}

	prices := map[string]decimal.Decimal{}
	if len(m.CatalogJSON) > 0 {
		if err := json.Unmarshal(m.CatalogJSON, &prices); err != nil {
			return nil, fmt.Errorf("failed to decode membership prices: %w", err)
		}
	}

	return &domain.GymSettings{
		Name:    m.Name,
		LogoURL: m.LogoURL,
		Plan:    domain.SubscriptionPlan(m.Plan),
		Catalog: domain.NewPlanCatalog(prices),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// SaveSettings upserts the gym settings row.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.GymSettings) error {
	catalogJSON, err := json.Marshal(settings.Catalog.Prices)
	if err != nil {
		return fmt.Errorf("failed to encode membership prices: %w", err)
	}

	query := `
		INSERT INTO gym_settings (id, name, logo_url, plan, membership_prices, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    logo_url = EXCLUDED.logo_url,
		    plan = EXCLUDED.plan,
		    membership_prices = EXCLUDED.membership_prices,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		settingsRowID,
		settings.Name,
		settings.LogoURL,
		string(settings.Plan),
		catalogJSON,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save gym settings: %w", err)
	}
	return nil
}
