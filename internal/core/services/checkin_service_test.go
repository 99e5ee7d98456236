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
	portsrepo "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/repositories"
	portssvc "github.com/padelchilecito-gestion/Sistema-gym/internal/core/ports/services"
	"github.com/padelchilecito-gestion/Sistema-gym/internal/core/services"
)

// --- Mock CheckInRepository ---
type MockCheckInRepository struct {
	mock.Mock
}

var _ portsrepo.CheckInRepositoryFacade = (*MockCheckInRepository)(nil)

func (m *MockCheckInRepository) FindOpenCheckIn(ctx context.Context, clientID string) (*domain.CheckIn, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) ListCheckInsSince(ctx context.Context, since time.Time) ([]domain.CheckIn, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) CountVisitsSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	args := m.Called(ctx, clientID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockCheckInRepository) SaveCheckIn(ctx context.Context, checkIn domain.CheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockCheckInRepository) SetCheckout(ctx context.Context, checkInID string, at time.Time) error {
	args := m.Called(ctx, checkInID, at)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CheckInServiceTestSuite struct {
	suite.Suite
	mockCheckInRepo *MockCheckInRepository
	mockClientRepo  *MockClientRepository
	service         portssvc.CheckInSvcFacade
}

func (suite *CheckInServiceTestSuite) SetupTest() {
	suite.mockCheckInRepo = new(MockCheckInRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewCheckInService(suite.mockCheckInRepo, suite.mockClientRepo)
}

func (suite *CheckInServiceTestSuite) activeClient(lastVisit *time.Time, points int, streak int) *domain.Client {
	return &domain.Client{
		ClientID:  uuid.NewString(),
		Name:      "Pedro Diaz",
		Status:    domain.StatusActive,
		Balance:   domain.BalanceOf(decimal.Zero),
		Points:    points,
		Level:     domain.LevelBronze,
		Streak:    streak,
		LastVisit: lastVisit,
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_FirstVisitAwardsPointsAndStartsStreak() {
	ctx := context.Background()
	client := suite.activeClient(nil, 0, 0)
	userID := uuid.NewString()

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()
	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, client.ClientID).
		Return(nil, fmt.Errorf("%w", apperrors.ErrNotFound)).Once()
	suite.mockCheckInRepo.On("SaveCheckIn", mock.Anything, mock.MatchedBy(func(c domain.CheckIn) bool {
		return c.ClientID == client.ClientID && c.ClientName == client.Name && c.CheckoutTimestamp == nil
	})).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Points == 10 && c.Streak == 1 && c.LastVisit != nil
	})).Return(nil).Once()

	checkIn, err := suite.service.RegisterCheckIn(ctx, client.ClientID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(checkIn)
	suite.NotEmpty(checkIn.CheckInID)
	suite.mockCheckInRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_VisitWithin48HoursExtendsStreak() {
	ctx := context.Background()
	yesterday := time.Now().UTC().Add(-30 * time.Hour)
	client := suite.activeClient(&yesterday, 490, 4)

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()
	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, client.ClientID).
		Return(nil, fmt.Errorf("%w", apperrors.ErrNotFound)).Once()
	suite.mockCheckInRepo.On("SaveCheckIn", mock.Anything, mock.AnythingOfType("domain.CheckIn")).Return(nil).Once()
	// 490 + 10 crosses the silver threshold.
	suite.mockClientRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Points == 500 && c.Level == domain.LevelSilver && c.Streak == 5
	})).Return(nil).Once()

	_, err := suite.service.RegisterCheckIn(ctx, client.ClientID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_LongGapRestartsStreak() {
	ctx := context.Background()
	lastWeek := time.Now().UTC().Add(-7 * 24 * time.Hour)
	client := suite.activeClient(&lastWeek, 100, 6)

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()
	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, client.ClientID).
		Return(nil, fmt.Errorf("%w", apperrors.ErrNotFound)).Once()
	suite.mockCheckInRepo.On("SaveCheckIn", mock.Anything, mock.AnythingOfType("domain.CheckIn")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Points == 110 && c.Streak == 1
	})).Return(nil).Once()

	_, err := suite.service.RegisterCheckIn(ctx, client.ClientID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_SecondVisitSameDayAwardsNothing() {
	ctx := context.Background()
	earlier := time.Now().UTC().Truncate(24 * time.Hour).Add(time.Minute)
	client := suite.activeClient(&earlier, 120, 3)

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()
	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, client.ClientID).
		Return(nil, fmt.Errorf("%w", apperrors.ErrNotFound)).Once()
	suite.mockCheckInRepo.On("SaveCheckIn", mock.Anything, mock.AnythingOfType("domain.CheckIn")).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClient", mock.Anything, mock.MatchedBy(func(c domain.Client) bool {
		return c.Points == 120 && c.Streak == 3
	})).Return(nil).Once()

	_, err := suite.service.RegisterCheckIn(ctx, client.ClientID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_AlreadyOnFloorRejected() {
	ctx := context.Background()
	client := suite.activeClient(nil, 0, 0)
	open := &domain.CheckIn{
		CheckInID: uuid.NewString(),
		ClientID:  client.ClientID,
		Timestamp: time.Now().UTC().Add(-10 * time.Minute),
	}

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()
	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, client.ClientID).Return(open, nil).Once()

	checkIn, err := suite.service.RegisterCheckIn(ctx, client.ClientID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(checkIn)
	suite.mockCheckInRepo.AssertNotCalled(suite.T(), "SaveCheckIn")
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckIn_ArchivedClientRejected() {
	ctx := context.Background()
	client := suite.activeClient(nil, 0, 0)
	client.IsActive = false

	suite.mockClientRepo.On("FindClientByID", mock.Anything, client.ClientID).Return(client, nil).Once()

	checkIn, err := suite.service.RegisterCheckIn(ctx, client.ClientID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(checkIn)
}

func (suite *CheckInServiceTestSuite) TestCurrentOccupancy_IgnoresCheckedOutAndStale() {
	ctx := context.Background()
	now := time.Now().UTC()
	out := now.Add(-20 * time.Minute)
	recent := []domain.CheckIn{
		{CheckInID: uuid.NewString(), Timestamp: now.Add(-15 * time.Minute)},
		{CheckInID: uuid.NewString(), Timestamp: now.Add(-30 * time.Minute), CheckoutTimestamp: &out},
		{CheckInID: uuid.NewString(), Timestamp: now.Add(-90 * time.Minute)},
	}

	suite.mockCheckInRepo.On("ListCheckInsSince", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(recent, nil).Once()

	count, err := suite.service.CurrentOccupancy(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *CheckInServiceTestSuite) TestRegisterCheckout_ClosesOpenCheckIn() {
	ctx := context.Background()
	clientID := uuid.NewString()
	open := &domain.CheckIn{
		CheckInID: uuid.NewString(),
		ClientID:  clientID,
		Timestamp: time.Now().UTC().Add(-45 * time.Minute),
	}

	suite.mockCheckInRepo.On("FindOpenCheckIn", mock.Anything, clientID).Return(open, nil).Once()
	suite.mockCheckInRepo.On("SetCheckout", mock.Anything, open.CheckInID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RegisterCheckout(ctx, clientID)

	suite.Require().NoError(err)
	suite.mockCheckInRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCheckInService(t *testing.T) {
	suite.Run(t, new(CheckInServiceTestSuite))
}
