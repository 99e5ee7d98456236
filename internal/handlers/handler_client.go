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

// clientHandler handles HTTP requests related to clients, their payments and
// their routine cycle.
type clientHandler struct {
	clientService  portssvc.ClientSvcFacade
	billingService portssvc.BillingSvcFacade
	routineService portssvc.RoutineSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs portssvc.ClientSvcFacade, bs portssvc.BillingSvcFacade, rs portssvc.RoutineSvcFacade) *clientHandler {
	return &clientHandler{
		clientService:  cs,
		billingService: bs,
		routineService: rs,
	}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, billingService portssvc.BillingSvcFacade, routineService portssvc.RoutineSvcFacade) {
	h := newClientHandler(clientService, billingService, routineService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.enrollClient)
		clients.GET("", h.listClients)
		clients.GET("/debtors", h.listDebtors)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
		clients.POST("/:id/payments", h.registerPayment)
		clients.POST("/:id/charge", h.chargeMembership)
		clients.GET("/:id/transactions", h.listClientTransactions)
		clients.PUT("/:id/routine", h.assignRoutine)
		clients.GET("/:id/routine-day", h.getRoutineDay)
	}
}

// enrollClient godoc
// @Summary Enroll a new client
// @Description Registers a new client and charges the first membership period up front
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.EnrollClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to enroll client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) enrollClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EnrollClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EnrollClient", slog.String("error", err.Error()))
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
	logger.Info("Received request to enroll client", slog.String("client_name", req.Name), slog.String("plan", req.Plan))

	newClient, err := h.clientService.EnrollClient(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error enrolling client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate client on enroll", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to enroll client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to enroll client"})
		}
		return
	}

	logger.Info("Client enrolled successfully", slog.String("client_id", newClient.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(newClient))
}

// getClient godoc
// @Summary Get a client by ID
// @Description Retrieves details for a specific client by its ID
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve client"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	logger = logger.With(slog.String("target_client_id", clientID))

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else {
			logger.Error("Failed to get client from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Retrieves a paginated list of clients, optionally filtered by a search string
// @Tags clients
// @Produce  json
// @Param   search query string false "Filter by name or email"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListClientsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClients", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params.Search, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list clients from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, dto.ListClientsResponse{Clients: dto.ToListClientResponse(clients)})
}

// listDebtors godoc
// @Summary List clients carrying debt
// @Description Retrieves every active client with a negative balance, largest debt first, plus the total owed
// @Tags clients
// @Produce  json
// @Success 200 {object} dto.DebtorsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list debtors"
// @Security BearerAuth
// @Router /clients/debtors [get]
func (h *clientHandler) listDebtors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	debtors, err := h.billingService.ListDebtors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list debtors from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list debtors"})
		return
	}

	totalOwed, err := h.billingService.TotalOwed(c.Request.Context())
	if err != nil {
		logger.Error("Failed to total outstanding debt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list debtors"})
		return
	}

	c.JSON(http.StatusOK, dto.DebtorsResponse{
		Debtors:   dto.ToListClientResponse(debtors),
		TotalOwed: totalOwed,
	})
}

// updateClient godoc
// @Summary Update a client
// @Description Updates a client's details
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID to update"
// @Param   client body dto.UpdateClientRequest true "Client details to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to update client"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", clientID), slog.String("user_id", userID))

	updatedClient, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for update")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating client", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update client"})
		}
		return
	}

	logger.Info("Client updated successfully")
	c.JSON(http.StatusOK, dto.ToClientResponse(updatedClient))
}

// deleteClient godoc
// @Summary Deactivate a client
// @Description Marks a client as inactive (soft delete)
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID to deactivate"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to deactivate client"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", clientID), slog.String("user_id", userID))

	if err := h.clientService.DeactivateClient(c.Request.Context(), clientID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for deactivation")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else {
			logger.Error("Failed to deactivate client in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate client"})
		}
		return
	}

	logger.Info("Client deactivated successfully")
	c.Status(http.StatusNoContent)
}

// registerPayment godoc
// @Summary Register a client payment
// @Description Credits a payment to the client's balance and records the ledger entry atomically
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   payment body dto.RegisterPaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid or non-positive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to register payment"
// @Security BearerAuth
// @Router /clients/{id}/payments [post]
func (h *clientHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", clientID), slog.String("user_id", userID))
	logger.Info("Received request to register payment", slog.String("amount", req.Amount.String()))

	txn, err := h.billingService.RegisterPayment(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAmount) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid payment amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for payment")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else {
			logger.Error("Failed to register payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register payment"})
		}
		return
	}

	logger.Info("Payment registered successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// chargeMembership godoc
// @Summary Charge one membership period
// @Description Debits the catalog price of the client's plan from their balance
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to charge membership"
// @Security BearerAuth
// @Router /clients/{id}/charge [post]
func (h *clientHandler) chargeMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", clientID), slog.String("user_id", userID))
	logger.Info("Received request to charge membership")

	client, err := h.billingService.ChargeMembership(c.Request.Context(), clientID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for membership charge")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else {
			logger.Error("Failed to charge membership in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to charge membership"})
		}
		return
	}

	logger.Info("Membership charged successfully", slog.String("balance", client.Balance.Value.String()))
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClientTransactions godoc
// @Summary List a client's ledger entries
// @Description Retrieves a page of the client's ledger entries, newest first
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /clients/{id}/transactions [get]
func (h *clientHandler) listClientTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClientTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.billingService.ListClientTransactions(c.Request.Context(), clientID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list client transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    nextToken,
	})
}

// assignRoutine godoc
// @Summary Assign a routine to a client
// @Description Sets the client's routine and restarts their 7-day cycle
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   id path string true "Client ID"
// @Param   assignment body dto.AssignRoutineRequest true "Routine assignment"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client or routine not found"
// @Failure 500 {object} ErrorResponse "Failed to assign routine"
// @Security BearerAuth
// @Router /clients/{id}/routine [put]
func (h *clientHandler) assignRoutine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	var req dto.AssignRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignRoutine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_client_id", clientID), slog.String("routine_id", req.RoutineID), slog.String("user_id", userID))

	if err := h.routineService.AssignRoutine(c.Request.Context(), clientID, req, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client or routine not found for assignment")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client or routine not found"})
		} else {
			logger.Error("Failed to assign routine in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to assign routine"})
		}
		return
	}

	logger.Info("Routine assigned successfully")
	c.Status(http.StatusNoContent)
}

// getRoutineDay godoc
// @Summary Get a client's routine day
// @Description Resolves which day of the 7-day cycle the client is on today
// @Tags clients
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} dto.RoutineDayResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse "Failed to resolve routine day"
// @Security BearerAuth
// @Router /clients/{id}/routine-day [get]
func (h *clientHandler) getRoutineDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("id")

	day, err := h.routineService.ClientRoutineDay(c.Request.Context(), clientID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Client not found for routine day", slog.String("target_client_id", clientID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Client not found"})
		} else {
			logger.Error("Failed to resolve routine day", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve routine day"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.RoutineDayResponse{ClientID: clientID, Day: day})
}
