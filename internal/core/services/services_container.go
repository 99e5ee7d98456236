package services

import (
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, generator SummaryGenerator) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings carries the plan price catalog, which billing and enrollment
	// depend on, so it is wired first.
	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.Billing = NewBillingService(repos.ClientRepo, repos.TransactionRepo, repos.TxManager, container.Settings)
	container.Client = NewClientService(repos.ClientRepo, repos.TransactionRepo, repos.TxManager, container.Settings)
	container.CheckIn = NewCheckInService(repos.CheckInRepo, repos.ClientRepo)
	container.Routine = NewRoutineService(repos.RoutineRepo, repos.ClientRepo)
	container.Staff = NewStaffService(repos.StaffRepo)
	container.Marketing = NewMarketingService(repos.ClientRepo)
	container.Auth = NewAuthService(cfg, repos.StaffRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Assistant = NewAssistantService(container.Billing, container.Client, container.CheckIn, generator)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ClientSvcFacade   = (*clientService)(nil)
	_ portssvc.BillingSvcFacade  = (*billingService)(nil)
	_ portssvc.SettingsSvcFacade = (*settingsService)(nil)
)
