package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

type ClientServiceTestSuite struct {
	suite.Suite
	mockClientRepo  *MockClientRepository
	mockTxnRepo     *MockTransactionRepository
	mockTxManager   *MockTxManager
	mockSettingsSvc *MockSettingsService
	service         portssvc.ClientSvcFacade
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockTxManager = new(MockTxManager)
	suite.mockSettingsSvc = new(MockSettingsService)
	suite.service = services.NewClientService(suite.mockClientRepo, suite.mockTxnRepo, suite.mockTxManager, suite.mockSettingsSvc)
}

func (suite *ClientServiceTestSuite) expectTx() {
	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *ClientServiceTestSuite) TestEnrollClient_ChargesFirstPeriodUpFront() {
	ctx := context.Background()
	userID := uuid.NewString()
	price := decimal.NewFromInt(15000)
	req := dto.EnrollClientRequest{
		Name: "Lucia Fernandez",
		Plan: "Mensual",
	}

	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Mensual").Return(price, nil).Once()
	suite.expectTx()
	suite.mockClientRepo.On("SaveClientInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == req.Name && c.Balance.Value.Equal(decimal.NewFromInt(-15000))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Type == domain.Income && t.Category == domain.CategoryMembership && t.Amount.Equal(price)
	})).Return(nil).Once()

	client, err := suite.service.EnrollClient(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.NotEmpty(client.ClientID)
	suite.Equal(domain.StatusActive, client.Status)
	suite.Equal(domain.LevelBronze, client.Level)
	suite.True(client.Balance.Value.Equal(decimal.NewFromInt(-15000)))
	suite.True(client.Balance.InDebt())
	suite.Require().NotNil(client.LastMembershipPayment)
	suite.WithinDuration(time.Now(), *client.LastMembershipPayment, time.Second)
	suite.Equal(userID, client.CreatedBy)
	suite.mockClientRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestEnrollClient_InitialCreditOffsetsCharge() {
	ctx := context.Background()
	req := dto.EnrollClientRequest{
		Name:           "Con Credito",
		Plan:           "Mensual",
		InitialBalance: decimal.NewFromInt(20000),
	}

	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Mensual").Return(decimal.NewFromInt(15000), nil).Once()
	suite.expectTx()
	suite.mockClientRepo.On("SaveClientInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Client")).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	client, err := suite.service.EnrollClient(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(client.Balance.Value.Equal(decimal.NewFromInt(5000)))
	suite.False(client.Balance.InDebt())
}

func (suite *ClientServiceTestSuite) TestEnrollClient_UnpricedPlanRecordsNoTransaction() {
	ctx := context.Background()
	req := dto.EnrollClientRequest{
		Name: "Plan Desconocido",
		Plan: "Inexistente",
	}

	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Inexistente").Return(decimal.Zero, nil).Once()
	suite.expectTx()
	suite.mockClientRepo.On("SaveClientInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Balance.Value.IsZero()
	})).Return(nil).Once()

	client, err := suite.service.EnrollClient(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(client.Balance.Value.IsZero())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx")
}

func (suite *ClientServiceTestSuite) TestUpdateClient_AppliesOnlyProvidedFields() {
	ctx := context.Background()
	clientID := uuid.NewString()
	existing := &domain.Client{
		ClientID: clientID,
		Name:     "Nombre Viejo",
		Email:    "viejo@example.com",
		Phone:    "111",
		Plan:     "Mensual",
		Status:   domain.StatusActive,
		Balance:  domain.BalanceOf(decimal.NewFromInt(-100)),
		IsActive: true,
	}
	newName := "Nombre Nuevo"
	req := dto.UpdateClientRequest{Name: &newName}

	suite.mockClientRepo.On("FindClientByID", mock.Anything, clientID).Return(existing, nil).Once()
	suite.mockClientRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == newName && c.Email == "viejo@example.com" && c.Balance.Value.Equal(decimal.NewFromInt(-100))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateClient(ctx, clientID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("viejo@example.com", updated.Email)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestListClients_DefaultsLimit() {
	ctx := context.Background()
	suite.mockClientRepo.On("ListClients", mock.Anything, "", 20, 0).Return([]domain.Client{}, nil).Once()

	_, err := suite.service.ListClients(ctx, "", 0, -5)

	suite.Require().NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestEnrollClient_CommitFailureReportsPartialWrite() {
	ctx := context.Background()
	req := dto.EnrollClientRequest{Name: "Socio Nuevo", Plan: "Mensual"}

	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Mensual").Return(decimal.NewFromInt(15000), nil).Once()
	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockClientRepo.On("SaveClientInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Client")).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockTxManager.On("Commit", mock.Anything, mock.Anything).Return(fmt.Errorf("connection reset")).Once()
	suite.mockTxManager.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()

	client, err := suite.service.EnrollClient(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPartialWrite)
	suite.Nil(client)
	suite.mockTxManager.AssertExpectations(suite.T())
}

// Enrolls a client, then pays the full first-period debt through the billing
// service wired to the same repositories.
func (suite *ClientServiceTestSuite) TestEnrollThenPay_SettlesDebt() {
	ctx := context.Background()
	userID := uuid.NewString()
	price := decimal.NewFromInt(15000)
	billing := services.NewBillingService(suite.mockClientRepo, suite.mockTxnRepo, suite.mockTxManager, suite.mockSettingsSvc)

	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Mensual").Return(price, nil).Once()
	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Twice()
	suite.mockTxManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockTxManager.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()

	var enrolled domain.Client
	suite.mockClientRepo.On("SaveClientInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Client")).
		Run(func(args mock.Arguments) {
			enrolled = args.Get(2).(domain.Client)
		}).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Twice()

	client, err := suite.service.EnrollClient(ctx, dto.EnrollClientRequest{Name: "Nuevo Socio", Plan: "Mensual"}, userID)
	suite.Require().NoError(err)
	suite.True(client.Balance.Value.Equal(decimal.NewFromInt(-15000)))

	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, client.ClientID).Return(&enrolled, nil).Once()
	suite.mockClientRepo.On("UpdateClientBalanceInTx", mock.Anything, mock.Anything, client.ClientID,
		mock.MatchedBy(func(b decimal.Decimal) bool { return b.IsZero() }),
		userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateMembershipPaidInTx", mock.Anything, mock.Anything, client.ClientID,
		mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	txn, err := billing.RegisterPayment(ctx, client.ClientID, dto.RegisterPaymentRequest{Amount: price, Description: "Cuota completa"}, userID)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(price))
	suite.mockClientRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
