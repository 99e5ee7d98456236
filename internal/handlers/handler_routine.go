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

// routineHandler handles HTTP requests related to workout routines.
type routineHandler struct {
	routineService portssvc.RoutineSvcFacade
}

// newRoutineHandler creates a new routineHandler.
func newRoutineHandler(rs portssvc.RoutineSvcFacade) *routineHandler {
	return &routineHandler{routineService: rs}
}

// registerRoutineRoutes registers routes related to routines.
func registerRoutineRoutes(rg *gin.RouterGroup, routineService portssvc.RoutineSvcFacade) {
	h := newRoutineHandler(routineService)

	routines := rg.Group("/routines")
	{
		routines.POST("", h.createRoutine)
		routines.GET("", h.listRoutines)
		routines.GET("/:id", h.getRoutine)
		routines.PUT("/:id", h.updateRoutine)
		routines.DELETE("/:id", h.deleteRoutine)
	}
}

// createRoutine godoc
// @Summary Create a new routine
// @Description Creates a workout routine with its exercises
// @Tags routines
// @Accept  json
// @Produce  json
// @Param   routine body dto.CreateRoutineRequest true "Routine details"
// @Success 201 {object} dto.RoutineResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create routine"
// @Security BearerAuth
// @Router /routines [post]
func (h *routineHandler) createRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRoutine", slog.String("error", err.Error()))
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
	logger.Info("Received request to create routine", slog.String("routine_name", req.Name))

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating routine", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create routine in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create routine"})
		}
		return
	}

	logger.Info("Routine created successfully", slog.String("routine_id", routine.RoutineID))
	c.JSON(http.StatusCreated, dto.ToRoutineResponse(routine))
}

// getRoutine godoc
// @Summary Get a routine by ID
// @Description Retrieves a routine with its exercises
// @Tags routines
// @Produce  json
// @Param   id path string true "Routine ID"
// @Success 200 {object} dto.RoutineResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Routine not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve routine"
// @Security BearerAuth
// @Router /routines/{id} [get]
func (h *routineHandler) getRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	routineID := c.Param("id")

	routine, err := h.routineService.GetRoutineByID(c.Request.Context(), routineID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Routine not found", slog.String("target_routine_id", routineID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Routine not found"})
		} else {
			logger.Error("Failed to get routine from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve routine"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRoutineResponse(routine))
}

// listRoutines godoc
// @Summary List routines
// @Description Retrieves all routines
// @Tags routines
// @Produce  json
// @Success 200 {array} dto.RoutineResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list routines"
// @Security BearerAuth
// @Router /routines [get]
func (h *routineHandler) listRoutines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	routines, err := h.routineService.ListRoutines(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list routines from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list routines"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRoutineResponse(routines))
}

// updateRoutine godoc
// @Summary Update a routine
// @Description Updates a routine's details and exercises
// @Tags routines
// @Accept  json
// @Produce  json
// @Param   id path string true "Routine ID to update"
// @Param   routine body dto.UpdateRoutineRequest true "Routine details to update"
// @Success 200 {object} dto.RoutineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Routine not found"
// @Failure 500 {object} ErrorResponse "Failed to update routine"
// @Security BearerAuth
// @Router /routines/{id} [put]
func (h *routineHandler) updateRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	routineID := c.Param("id")

	var req dto.UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRoutine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_routine_id", routineID), slog.String("user_id", userID))

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), routineID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Routine not found for update")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Routine not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating routine", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update routine in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update routine"})
		}
		return
	}

	logger.Info("Routine updated successfully")
	c.JSON(http.StatusOK, dto.ToRoutineResponse(routine))
}

// deleteRoutine godoc
// @Summary Delete a routine
// @Description Removes a routine; clients referencing it lose the assignment
// @Tags routines
// @Produce  json
// @Param   id path string true "Routine ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Routine not found"
// @Failure 500 {object} ErrorResponse "Failed to delete routine"
// @Security BearerAuth
// @Router /routines/{id} [delete]
func (h *routineHandler) deleteRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	routineID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_routine_id", routineID), slog.String("user_id", userID))

	if err := h.routineService.DeleteRoutine(c.Request.Context(), routineID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Routine not found for deletion")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Routine not found"})
		} else {
			logger.Error("Failed to delete routine in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete routine"})
		}
		return
	}

	logger.Info("Routine deleted successfully")
	c.Status(http.StatusNoContent)
}
