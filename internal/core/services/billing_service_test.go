package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/padelchilecito-gestion/Sistema-gym/internal/apperrors"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/domain"
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/dto"
)

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, search string, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListDebtors(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListAbsentSince(ctx context.Context, cutoff time.Time) ([]domain.Client, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListBirthdaysInMonth(ctx context.Context, month time.Month) ([]domain.Client, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	args := m.Called(ctx, clientID, userID, now)
	return args.Error(0)
}

func (m *MockClientRepository) SaveClientInTx(ctx context.Context, tx pgx.Tx, client domain.Client) error {
	args := m.Called(ctx, tx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, tx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClientBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, clientID, newBalance, userID, now)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateMembershipPaidInTx(ctx context.Context, tx pgx.Tx, clientID string, paidAt time.Time, userID string) error {
	args := m.Called(ctx, tx, clientID, paidAt, userID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, clientID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) SumByTypeSince(ctx context.Context, since time.Time) (map[domain.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionType]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSettings(ctx context.Context) (*domain.GymSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.GymSettings, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymSettings), args.Error(1)
}

func (m *MockSettingsService) SetPlanPrice(ctx context.Context, planCode string, amount decimal.Decimal, userID string) error {
	args := m.Called(ctx, planCode, amount, userID)
	return args.Error(0)
}

func (m *MockSettingsService) PlanPrice(ctx context.Context, planCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, planCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type BillingServiceTestSuite struct {
	suite.Suite
	mockClientRepo  *MockClientRepository
	mockTxnRepo     *MockTransactionRepository
	mockTxManager   *MockTxManager
	mockSettingsSvc *MockSettingsService
	service         portssvc.BillingSvcFacade
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockTxManager = new(MockTxManager)
	suite.mockSettingsSvc = new(MockSettingsService)
	suite.service = services.NewBillingService(suite.mockClientRepo, suite.mockTxnRepo, suite.mockTxManager, suite.mockSettingsSvc)
}

// expectTx wires the Begin/Commit/Rollback cycle. Rollback after a commit is
// a no-op in the real manager, so it is always allowed here.
func (suite *BillingServiceTestSuite) expectTx() {
	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- RegisterPayment ---

func (suite *BillingServiceTestSuite) TestRegisterPayment_CreditsBalance() {
	ctx := context.Background()
	clientID := uuid.NewString()
	userID := uuid.NewString()
	client := &domain.Client{
		ClientID: clientID,
		Name:     "Carla Perez",
		Plan:     "Mensual",
		Balance:  domain.BalanceOf(decimal.NewFromInt(-15000)),
		IsActive: true,
	}
	req := dto.RegisterPaymentRequest{Amount: decimal.NewFromInt(10000), Description: "Pago parcial"}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, clientID).Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.ClientID == clientID && t.Type == domain.Income && t.Amount.Equal(req.Amount)
	})).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClientBalanceInTx", mock.Anything, mock.Anything, clientID,
		mock.MatchedBy(func(b decimal.Decimal) bool { return b.Equal(decimal.NewFromInt(-5000)) }),
		userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateMembershipPaidInTx", mock.Anything, mock.Anything, clientID,
		mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	txn, err := suite.service.RegisterPayment(ctx, clientID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(clientID, txn.ClientID)
	suite.True(txn.Amount.Equal(req.Amount))
	suite.Equal(domain.Income, txn.Type)
	suite.mockClientRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestRegisterPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		req := dto.RegisterPaymentRequest{Amount: amount}
		txn, err := suite.service.RegisterPayment(ctx, uuid.NewString(), req, uuid.NewString())
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
		suite.Nil(txn)
	}
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin")
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByIDForUpdate")
}

func (suite *BillingServiceTestSuite) TestRegisterPayment_IdempotentReplayReturnsOriginal() {
	ctx := context.Background()
	clientID := uuid.NewString()
	key := uuid.NewString()
	original := &domain.Transaction{
		TransactionID:  uuid.NewString(),
		ClientID:       clientID,
		Amount:         decimal.NewFromInt(15000),
		Type:           domain.Income,
		IdempotencyKey: key,
	}
	req := dto.RegisterPaymentRequest{Amount: decimal.NewFromInt(15000), IdempotencyKey: key}

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", mock.Anything, key).Return(original, nil).Once()

	txn, err := suite.service.RegisterPayment(ctx, clientID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(original.TransactionID, txn.TransactionID)
	// The balance must not move a second time.
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin")
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClientBalanceInTx")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestRegisterPayment_ClientNotFound() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.RegisterPaymentRequest{Amount: decimal.NewFromInt(500)}

	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxManager.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, clientID).
		Return(nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)).Once()

	txn, err := suite.service.RegisterPayment(ctx, clientID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Commit")
}

// --- ChargeMembership ---

func (suite *BillingServiceTestSuite) TestChargeMembership_DebitsCatalogPrice() {
	ctx := context.Background()
	clientID := uuid.NewString()
	userID := uuid.NewString()
	client := &domain.Client{
		ClientID: clientID,
		Name:     "Juan Gomez",
		Plan:     "Mensual",
		Balance:  domain.BalanceOf(decimal.NewFromInt(2000)),
		IsActive: true,
	}
	price := decimal.NewFromInt(15000)

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, clientID).Return(client, nil).Once()
	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Mensual").Return(price, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Category == domain.CategoryMembership && t.Amount.Equal(price)
	})).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClientBalanceInTx", mock.Anything, mock.Anything, clientID,
		mock.MatchedBy(func(b decimal.Decimal) bool { return b.Equal(decimal.NewFromInt(-13000)) }),
		userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateMembershipPaidInTx", mock.Anything, mock.Anything, clientID,
		mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	updated, err := suite.service.ChargeMembership(ctx, clientID, userID)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Value.Equal(decimal.NewFromInt(-13000)))
	suite.True(updated.Balance.InDebt())
	suite.NotNil(updated.LastMembershipPayment)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestChargeMembership_UnpricedPlanLeavesNoLedgerEntry() {
	ctx := context.Background()
	clientID := uuid.NewString()
	userID := uuid.NewString()
	client := &domain.Client{
		ClientID: clientID,
		Name:     "Plan Libre",
		Plan:     "Promo",
		Balance:  domain.BalanceOf(decimal.NewFromInt(500)),
		IsActive: true,
	}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, clientID).Return(client, nil).Once()
	suite.mockSettingsSvc.On("PlanPrice", mock.Anything, "Promo").Return(decimal.Zero, nil).Once()
	suite.mockClientRepo.On("UpdateClientBalanceInTx", mock.Anything, mock.Anything, clientID,
		mock.MatchedBy(func(b decimal.Decimal) bool { return b.Equal(decimal.NewFromInt(500)) }),
		userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateMembershipPaidInTx", mock.Anything, mock.Anything, clientID,
		mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	updated, err := suite.service.ChargeMembership(ctx, clientID, userID)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Value.Equal(decimal.NewFromInt(500)))
	// The period still counts as billed even though nothing was charged.
	suite.NotNil(updated.LastMembershipPayment)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx")
}

// --- Debt queries ---

func (suite *BillingServiceTestSuite) TestTotalOwed_SumsDebtMagnitudes() {
	ctx := context.Background()
	debtors := []domain.Client{
		{ClientID: uuid.NewString(), Balance: domain.BalanceOf(decimal.NewFromInt(-30000))},
		{ClientID: uuid.NewString(), Balance: domain.BalanceOf(decimal.NewFromInt(-4500))},
	}

	suite.mockClientRepo.On("ListDebtors", mock.Anything).Return(debtors, nil).Once()

	total, err := suite.service.TotalOwed(ctx)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(34500)), "expected 34500, got %s", total)
}

func (suite *BillingServiceTestSuite) TestTotalOwed_NoDebtors() {
	ctx := context.Background()
	suite.mockClientRepo.On("ListDebtors", mock.Anything).Return([]domain.Client{}, nil).Once()

	total, err := suite.service.TotalOwed(ctx)

	suite.Require().NoError(err)
	suite.True(total.IsZero())
}

// --- Ledger ---

func (suite *BillingServiceTestSuite) TestRecordTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Compra de pesas",
		Amount:      decimal.NewFromInt(-200),
		Type:        domain.Expense,
		Category:    "Equipamiento",
	}

	txn, err := suite.service.RecordTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *BillingServiceTestSuite) TestCashFlowSummary_ComputesNet() {
	ctx := context.Background()
	since := time.Now().AddDate(0, 0, -30)
	sums := map[domain.TransactionType]decimal.Decimal{
		domain.Income:  decimal.NewFromInt(90000),
		domain.Expense: decimal.NewFromInt(35000),
	}

	suite.mockTxnRepo.On("SumByTypeSince", mock.Anything, since).Return(sums, nil).Once()

	summary, err := suite.service.CashFlowSummary(ctx, since)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(90000)))
	suite.True(summary.TotalExpense.Equal(decimal.NewFromInt(35000)))
	suite.True(summary.Net.Equal(decimal.NewFromInt(55000)))
}

// --- Run Test Suite ---
func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
