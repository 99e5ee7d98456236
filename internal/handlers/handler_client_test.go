package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/handlers"
	"github.com/padelchilecito-gestion/Sistema-gym/pkg/config"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) EnrollClient(ctx context.Context, req dto.EnrollClientRequest, userID string) (*domain.Client, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) DeactivateClient(ctx context.Context, clientID string, userID string) error {
	args := m.Called(ctx, clientID, userID)
	return args.Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) RegisterPayment(ctx context.Context, clientID string, req dto.RegisterPaymentRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, clientID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockBillingService) ChargeMembership(ctx context.Context, clientID string, userID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockBillingService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockBillingService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockBillingService) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*string), args.Error(2)
}
func (m *MockBillingService) ListClientTransactions(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, clientID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(*string), args.Error(2)
}
func (m *MockBillingService) CashFlowSummary(ctx context.Context, since time.Time) (*dto.CashFlowSummaryResponse, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CashFlowSummaryResponse), args.Error(1)
}
func (m *MockBillingService) ListDebtors(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockBillingService) TotalOwed(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.BillingSvcFacade = (*MockBillingService)(nil)

// --- Mock RoutineService ---
type MockRoutineService struct {
	mock.Mock
}

func (m *MockRoutineService) GetRoutineByID(ctx context.Context, routineID string) (*domain.Routine, error) {
	args := m.Called(ctx, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Routine), args.Error(1)
}
func (m *MockRoutineService) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Routine), args.Error(1)
}
func (m *MockRoutineService) CreateRoutine(ctx context.Context, req dto.CreateRoutineRequest, userID string) (*domain.Routine, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Routine), args.Error(1)
}
func (m *MockRoutineService) UpdateRoutine(ctx context.Context, routineID string, req dto.UpdateRoutineRequest, userID string) (*domain.Routine, error) {
	args := m.Called(ctx, routineID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Routine), args.Error(1)
}
func (m *MockRoutineService) DeleteRoutine(ctx context.Context, routineID string) error {
	args := m.Called(ctx, routineID)
	return args.Error(0)
}
func (m *MockRoutineService) AssignRoutine(ctx context.Context, clientID string, req dto.AssignRoutineRequest, userID string) error {
	args := m.Called(ctx, clientID, req, userID)
	return args.Error(0)
}
func (m *MockRoutineService) ClientRoutineDay(ctx context.Context, clientID string, now time.Time) (int, error) {
	args := m.Called(ctx, clientID, now)
	return args.Int(0), args.Error(1)
}

var _ portssvc.RoutineSvcFacade = (*MockRoutineService)(nil)

// --- Test Suite ---
type ClientHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockClientService  *MockClientService
	mockBillingService *MockBillingService
	mockRoutineService *MockRoutineService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ClientHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "gymflow-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ClientHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockClientService = new(MockClientService)
	suite.mockBillingService = new(MockBillingService)
	suite.mockRoutineService = new(MockRoutineService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{
		Client:  suite.mockClientService,
		Billing: suite.mockBillingService,
		Routine: suite.mockRoutineService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ClientHandlerTestSuite) authedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ClientHandlerTestSuite) TestEnrollClient_Success() {
	req := dto.EnrollClientRequest{
		Name: "Maria Lopez",
		Plan: "Mensual",
	}
	expected := &domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Plan:     req.Plan,
		Status:   domain.StatusActive,
		Balance:  domain.BalanceOf(decimal.NewFromInt(-15000)),
		JoinDate: time.Now(),
	}

	suite.mockClientService.On("EnrollClient",
		mock.Anything,
		mock.MatchedBy(func(r dto.EnrollClientRequest) bool { return r.Name == req.Name && r.Plan == req.Plan }),
		mock.AnythingOfType("string"),
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/clients", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClientResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.ClientID, resp.ClientID)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(-15000)))
	suite.True(resp.Debt.Equal(decimal.NewFromInt(15000)))
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestEnrollClient_MissingPlan() {
	req := dto.EnrollClientRequest{Name: "Sin Plan"}

	w := suite.authedRequest(http.MethodPost, "/api/v1/clients", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "EnrollClient")
}

func (suite *ClientHandlerTestSuite) TestRegisterPayment_Success() {
	clientID := uuid.NewString()
	req := dto.RegisterPaymentRequest{
		Amount:      decimal.NewFromInt(15000),
		Description: "Cuota julio",
	}
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ClientID:      clientID,
		Amount:        req.Amount,
		Type:          domain.Income,
		Category:      "Cuota",
		Date:          time.Now(),
	}

	suite.mockBillingService.On("RegisterPayment",
		mock.Anything,
		clientID,
		mock.MatchedBy(func(r dto.RegisterPaymentRequest) bool { return r.Amount.Equal(req.Amount) }),
		mock.AnythingOfType("string"),
	).Return(expected, nil).Once()

	w := suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/clients/%s/payments", clientID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.mockBillingService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestRegisterPayment_NonPositiveAmountRejectedAtBinding() {
	clientID := uuid.NewString()
	req := dto.RegisterPaymentRequest{Amount: decimal.NewFromInt(-50)}

	w := suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/clients/%s/payments", clientID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBillingService.AssertNotCalled(suite.T(), "RegisterPayment")
}

func (suite *ClientHandlerTestSuite) TestListDebtors_Success() {
	debtor := domain.Client{
		ClientID: uuid.NewString(),
		Name:     "Deudor Uno",
		Status:   domain.StatusActive,
		Balance:  domain.BalanceOf(decimal.NewFromInt(-30000)),
	}

	suite.mockBillingService.On("ListDebtors", mock.Anything).Return([]domain.Client{debtor}, nil).Once()
	suite.mockBillingService.On("TotalOwed", mock.Anything).Return(decimal.NewFromInt(30000), nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/clients/debtors", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DebtorsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Debtors, 1)
	suite.True(resp.TotalOwed.Equal(decimal.NewFromInt(30000)))
	suite.mockBillingService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestGetClient_NotFound() {
	clientID := uuid.NewString()
	suite.mockClientService.On("GetClientByID", mock.Anything, clientID).
		Return(nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/clients/"+clientID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockClientService.AssertExpectations(suite.T())
}

func (suite *ClientHandlerTestSuite) TestGetClient_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/clients/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockClientService.AssertNotCalled(suite.T(), "GetClientByID")
}

func (suite *ClientHandlerTestSuite) TestGetRoutineDay_Success() {
	clientID := uuid.NewString()
	suite.mockRoutineService.On("ClientRoutineDay", mock.Anything, clientID, mock.AnythingOfType("time.Time")).
		Return(3, nil).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/clients/%s/routine-day", clientID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RoutineDayResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Day)
	suite.mockRoutineService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestClientHandler(t *testing.T) {
	suite.Run(t, new(ClientHandlerTestSuite))
}
