package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
	"github.com/padelchilecito-gestion/Sistema-gym/pkg/config"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Everything else sits behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerClientRoutes(v1, services.Client, services.Billing, services.Routine)
	registerBillingRoutes(v1, services.Billing)
	registerSettingsRoutes(v1, services.Settings)
	registerCheckInRoutes(v1, services.CheckIn)
	registerRoutineRoutes(v1, services.Routine)
	registerStaffRoutes(v1, services.Staff)
	registerMarketingRoutes(v1, services.Marketing)
	registerAssistantRoutes(v1, services.Assistant)
}
