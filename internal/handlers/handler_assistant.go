package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/middleware"
)

// assistantHandler handles HTTP requests for the AI business summary.
type assistantHandler struct {
	assistantService portssvc.AssistantSvcFacade
}

// newAssistantHandler creates a new assistantHandler.
func newAssistantHandler(as portssvc.AssistantSvcFacade) *assistantHandler {
	return &assistantHandler{assistantService: as}
}

// registerAssistantRoutes registers routes related to the assistant.
func registerAssistantRoutes(rg *gin.RouterGroup, assistantService portssvc.AssistantSvcFacade) {
	h := newAssistantHandler(assistantService)

	assistant := rg.Group("/assistant")
	{
		assistant.GET("/summary", h.getSummary)
		assistant.POST("/summarize", h.summarize)
	}
}

// getSummary godoc
// @Summary Get an AI business summary
// @Description Builds a snapshot of the business and asks the language model for a short summary
// @Tags assistant
// @Produce  json
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Assistant unavailable"
// @Failure 500 {object} ErrorResponse "Failed to generate summary"
// @Security BearerAuth
// @Router /assistant/summary [get]
func (h *assistantHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.assistantService.Summarize(c.Request.Context(), "")
	if err != nil {
		logger.Error("Failed to generate summary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary, GeneratedAt: time.Now()})
}

// summarize godoc
// @Summary Ask the assistant a question about the business
// @Description Answers the owner's question against a snapshot of the business, or summarizes it when no question is given
// @Tags assistant
// @Accept  json
// @Produce  json
// @Param question body dto.SummarizeRequest false "Optional owner question"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Assistant unavailable"
// @Security BearerAuth
// @Router /assistant/summarize [post]
func (h *assistantHandler) summarize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SummarizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	summary, err := h.assistantService.Summarize(c.Request.Context(), req.Question)
	if err != nil {
		logger.Error("Failed to generate summary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary, GeneratedAt: time.Now()})
}
