package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// marketingHandler handles HTTP requests for the retention lists.
type marketingHandler struct {
	marketingService portssvc.MarketingSvcFacade
}

// newMarketingHandler creates a new marketingHandler.
func newMarketingHandler(ms portssvc.MarketingSvcFacade) *marketingHandler {
	return &marketingHandler{marketingService: ms}
}

// registerMarketingRoutes registers routes related to retention lists.
func registerMarketingRoutes(rg *gin.RouterGroup, marketingService portssvc.MarketingSvcFacade) {
	h := newMarketingHandler(marketingService)

	marketing := rg.Group("/marketing")
	{
		marketing.GET("/rescue", h.listRescue)
		marketing.GET("/birthdays", h.listBirthdays)
	}
}

// listRescue godoc
// @Summary List clients to rescue
// @Description Retrieves active clients who have not visited in over 15 days
// @Tags marketing
// @Produce  json
// @Success 200 {object} dto.ListClientsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build rescue list"
// @Security BearerAuth
// @Router /marketing/rescue [get]
func (h *marketingHandler) listRescue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clients, err := h.marketingService.RescueList(c.Request.Context(), time.Now())
	if err != nil {
		logger.Error("Failed to build rescue list", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build rescue list"})
		return
	}

	c.JSON(http.StatusOK, dto.ListClientsResponse{Clients: dto.ToListClientResponse(clients)})
}

// listBirthdays godoc
// @Summary List clients with a birthday this month
// @Description Retrieves active clients with a birthday in the given month (defaults to the current month)
// @Tags marketing
// @Produce  json
// @Param   month query int false "Month number 1-12" default(current)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 400 {object} ErrorResponse "Invalid month"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build birthday list"
// @Security BearerAuth
// @Router /marketing/birthdays [get]
func (h *marketingHandler) listBirthdays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	month := time.Now().Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be between 1 and 12"})
			return
		}
		month = time.Month(parsed)
	}

	clients, err := h.marketingService.BirthdayList(c.Request.Context(), month)
	if err != nil {
		logger.Error("Failed to build birthday list", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build birthday list"})
		return
	}

	c.JSON(http.StatusOK, dto.ListClientsResponse{Clients: dto.ToListClientResponse(clients)})
}
