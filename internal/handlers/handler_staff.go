package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// staffHandler handles HTTP requests related to staff accounts.
type staffHandler struct {
	staffService portssvc.StaffSvcFacade
}

// newStaffHandler creates a new staffHandler.
func newStaffHandler(ss portssvc.StaffSvcFacade) *staffHandler {
	return &staffHandler{staffService: ss}
}

// registerStaffRoutes registers routes related to staff accounts.
func registerStaffRoutes(rg *gin.RouterGroup, staffService portssvc.StaffSvcFacade) {
	h := newStaffHandler(staffService)

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/:id", h.getStaff)
		staff.PUT("/:id", h.updateStaff)
		staff.DELETE("/:id", h.deleteStaff)
	}
}

// createStaff godoc
// @Summary Create a staff account
// @Description Creates a staff account with a hashed password
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Failed to create staff"
// @Security BearerAuth
// @Router /staff [post]
func (h *staffHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStaff", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received request to create staff", slog.String("staff_email", req.Email))

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate staff email", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email is already registered"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating staff", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create staff in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create staff"})
		}
		return
	}

	logger.Info("Staff created successfully", slog.String("staff_id", staff.StaffID))
	c.JSON(http.StatusCreated, dto.ToStaffResponse(staff))
}

// getStaff godoc
// @Summary Get a staff member by ID
// @Tags staff
// @Produce  json
// @Param   id path string true "Staff ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Staff not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve staff"
// @Security BearerAuth
// @Router /staff/{id} [get]
func (h *staffHandler) getStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("id")

	staff, err := h.staffService.GetStaffByID(c.Request.Context(), staffID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Staff not found", slog.String("target_staff_id", staffID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Staff not found"})
		} else {
			logger.Error("Failed to get staff from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve staff"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// listStaff godoc
// @Summary List staff members
// @Tags staff
// @Produce  json
// @Success 200 {array} dto.StaffResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list staff"
// @Security BearerAuth
// @Router /staff [get]
func (h *staffHandler) listStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	staff, err := h.staffService.ListStaff(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list staff from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list staff"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStaffResponse(staff))
}

// updateStaff godoc
// @Summary Update a staff member
// @Description Updates a staff member's name, role or password
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   id path string true "Staff ID to update"
// @Param   staff body dto.UpdateStaffRequest true "Staff details to update"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Staff not found"
// @Failure 500 {object} ErrorResponse "Failed to update staff"
// @Security BearerAuth
// @Router /staff/{id} [put]
func (h *staffHandler) updateStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("id")

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStaff", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_staff_id", staffID), slog.String("user_id", userID))

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), staffID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Staff not found for update")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Staff not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating staff", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update staff in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update staff"})
		}
		return
	}

	logger.Info("Staff updated successfully")
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// deleteStaff godoc
// @Summary Deactivate a staff member
// @Description Marks a staff account as inactive (soft delete)
// @Tags staff
// @Produce  json
// @Param   id path string true "Staff ID to deactivate"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Staff not found"
// @Failure 500 {object} ErrorResponse "Failed to deactivate staff"
// @Security BearerAuth
// @Router /staff/{id} [delete]
func (h *staffHandler) deleteStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_staff_id", staffID), slog.String("user_id", userID))

	if err := h.staffService.DeactivateStaff(c.Request.Context(), staffID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Staff not found for deactivation")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Staff not found"})
		} else {
			logger.Error("Failed to deactivate staff in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate staff"})
		}
		return
	}

	logger.Info("Staff deactivated successfully")
	c.Status(http.StatusNoContent)
}
