package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// checkInHandler handles HTTP requests for floor access and occupancy.
type checkInHandler struct {
	checkInService portssvc.CheckInSvcFacade
}

// newCheckInHandler creates a new checkInHandler.
func newCheckInHandler(cs portssvc.CheckInSvcFacade) *checkInHandler {
	return &checkInHandler{checkInService: cs}
}

// registerCheckInRoutes registers routes related to check-ins.
func registerCheckInRoutes(rg *gin.RouterGroup, checkInService portssvc.CheckInSvcFacade) {
	h := newCheckInHandler(checkInService)

	checkins := rg.Group("/checkins")
	{
		checkins.POST("", h.registerCheckIn)
		checkins.POST("/checkout", h.registerCheckout)
		checkins.GET("", h.listRecentCheckIns)
		checkins.GET("/occupancy", h.getOccupancy)
	}
}

// registerCheckIn godoc
// @Summary Register a client check-in
// @Description Records a client entering the gym, updating their streak and last visit
// @Tags checkins
// @Accept  json
// @Produce  json
// @Param   checkin body dto.CheckInRequest true "Client entering"
// @Success 201 {object} dto.CheckInResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 409 {object} ErrorResponse "Client already checked in"
// @Failure 500 {object} ErrorResponse "Failed to register check-in"
// @Security BearerAuth
// @Router /checkins [post]
func (h *checkInHandler) registerCheckIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterCheckIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", req.ClientID), slog.String("user_id", userID))

	checkIn, err := h.checkInService.RegisterCheckIn(c.Request.Context(), req.ClientID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for check-in")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Client already checked in")
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Client is already checked in"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error on check-in", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to register check-in in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register check-in"})
		}
		return
	}

	logger.Info("Check-in registered successfully", slog.String("checkin_id", checkIn.CheckInID))
	c.JSON(http.StatusCreated, dto.ToCheckInResponse(checkIn))
}

// registerCheckout godoc
// @Summary Register a client checkout
// @Description Closes the client's open check-in
// @Tags checkins
// @Accept  json
// @Produce  json
// @Param   checkout body dto.CheckInRequest true "Client leaving"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "No open check-in for client"
// @Failure 500 {object} ErrorResponse "Failed to register checkout"
// @Security BearerAuth
// @Router /checkins/checkout [post]
func (h *checkInHandler) registerCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterCheckout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("target_client_id", req.ClientID))

	if err := h.checkInService.RegisterCheckout(c.Request.Context(), req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No open check-in found for checkout")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No open check-in for this client"})
		} else {
			logger.Error("Failed to register checkout in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register checkout"})
		}
		return
	}

	logger.Info("Checkout registered successfully")
	c.Status(http.StatusNoContent)
}

// listRecentCheckIns godoc
// @Summary List today's check-ins
// @Description Retrieves today's check-ins, newest first
// @Tags checkins
// @Produce  json
// @Success 200 {array} dto.CheckInResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list check-ins"
// @Security BearerAuth
// @Router /checkins [get]
func (h *checkInHandler) listRecentCheckIns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	checkIns, err := h.checkInService.ListRecentCheckIns(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list check-ins from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list check-ins"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCheckInResponse(checkIns))
}

// getOccupancy godoc
// @Summary Get current occupancy
// @Description Counts clients still on the floor right now
// @Tags checkins
// @Produce  json
// @Success 200 {object} dto.OccupancyResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to count occupancy"
// @Security BearerAuth
// @Router /checkins/occupancy [get]
func (h *checkInHandler) getOccupancy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	current, err := h.checkInService.CurrentOccupancy(c.Request.Context())
	if err != nil {
		logger.Error("Failed to count occupancy", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to count occupancy"})
		return
	}

	c.JSON(http.StatusOK, dto.OccupancyResponse{Current: current, AsOf: time.Now()})
}
