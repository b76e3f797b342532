package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/core/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MortgageRepository ---
type MockMortgageRepository struct {
	mock.Mock
}

// Ensure MockMortgageRepository implements portsrepo.MortgageRepositoryFacade
var _ portsrepo.MortgageRepositoryFacade = (*MockMortgageRepository)(nil)

func (m *MockMortgageRepository) SaveMortgage(ctx context.Context, mortgage domain.Mortgage) error {
	args := m.Called(ctx, mortgage)
	return args.Error(0)
}

func (m *MockMortgageRepository) BookPayment(ctx context.Context, payment domain.Payment, entry domain.LedgerEntry) (*domain.Mortgage, error) {
	args := m.Called(ctx, payment, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}

func (m *MockMortgageRepository) UpdateMortgageDetails(ctx context.Context, mortgage domain.Mortgage) error {
	args := m.Called(ctx, mortgage)
	return args.Error(0)
}

func (m *MockMortgageRepository) UpdateMortgageStatus(ctx context.Context, mortgageID string, status domain.MortgageStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, mortgageID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockMortgageRepository) UpdateAmountTotal(ctx context.Context, mortgageID string, amountTotal decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, mortgageID, amountTotal, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockMortgageRepository) DeleteMortgage(ctx context.Context, mortgageID string) error {
	args := m.Called(ctx, mortgageID)
	return args.Error(0)
}

func (m *MockMortgageRepository) FindMortgageByID(ctx context.Context, mortgageID string) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}

func (m *MockMortgageRepository) ListMortgagesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Mortgage, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mortgage), args.Error(1)
}

func (m *MockMortgageRepository) ListMortgages(ctx context.Context, limit int, offset int) ([]domain.Mortgage, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mortgage), args.Error(1)
}

func (m *MockMortgageRepository) FindPaymentsByMortgageID(ctx context.Context, mortgageID string) ([]domain.Payment, error) {
	args := m.Called(ctx, mortgageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock PropertyService ---
type MockPropertyService struct {
	mock.Mock
}

var _ portssvc.PropertySvcFacade = (*MockPropertyService)(nil)

func (m *MockPropertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, actor domain.Actor) (*domain.Property, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyService) GetPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyService) GetPropertyPrice(ctx context.Context, propertyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPropertyService) ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, actor domain.Actor) (*domain.Property, error) {
	args := m.Called(ctx, propertyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, propertyID string, actor domain.Actor) error {
	args := m.Called(ctx, propertyID, actor)
	return args.Error(0)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, userID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, actor domain.Actor) error {
	args := m.Called(ctx, userID, actor)
	return args.Error(0)
}

func (m *MockUserService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type MortgageServiceTestSuite struct {
	suite.Suite
	mockMortgageRepo *MockMortgageRepository
	mockPropertySvc  *MockPropertyService
	mockUserSvc      *MockUserService
	service          portssvc.MortgageSvcFacade
	employee         domain.Actor
	admin            domain.Actor
	borrower         domain.Actor
	propertyID       string
}

func (suite *MortgageServiceTestSuite) SetupTest() {
	suite.mockMortgageRepo = new(MockMortgageRepository)
	suite.mockPropertySvc = new(MockPropertyService)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewMortgageService(suite.mockMortgageRepo, suite.mockPropertySvc, suite.mockUserSvc)

	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.borrower = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleUser}
	suite.propertyID = uuid.NewString()
}

func (suite *MortgageServiceTestSuite) activeMortgage() *domain.Mortgage {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Mortgage{
		MortgageID:     uuid.NewString(),
		PropertyID:     suite.propertyID,
		UserID:         suite.borrower.UserID,
		InitialDeposit: decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromFloat(0.05),
		InterestType:   domain.InterestFixed,
		Frequency:      domain.FrequencyWeekly,
		DurationDays:   365,
		AmountTotal:    decimal.RequireFromString("21000.00"),
		AmountPaid:     decimal.NewFromInt(1000),
		StartDate:      start,
		NextPaymentDue: start.AddDate(0, 0, 7),
		Status:         domain.MortgageActive,
	}
}

func validCreateRequest(propertyID, userID string) dto.CreateMortgageRequest {
	return dto.CreateMortgageRequest{
		PropertyID:       propertyID,
		UserID:           userID,
		InitialDeposit:   decimal.NewFromInt(1000),
		InterestRate:     decimal.NewFromFloat(0.05),
		InterestType:     string(domain.InterestFixed),
		PaymentFrequency: string(domain.FrequencyWeekly),
		DurationDays:     365,
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *MortgageServiceTestSuite) TestCreateMortgage_Success() {
	ctx := context.Background()
	req := validCreateRequest(suite.propertyID, suite.borrower.UserID)

	suite.mockPropertySvc.On("GetPropertyPrice", ctx, suite.propertyID).Return(decimal.NewFromInt(21000), nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, suite.borrower.UserID).Return(&domain.User{UserID: suite.borrower.UserID}, nil).Once()
	suite.mockMortgageRepo.On("SaveMortgage", ctx, mock.AnythingOfType("domain.Mortgage")).Return(nil).Once()

	created, err := suite.service.CreateMortgage(ctx, req, suite.employee)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.MortgageID)
	suite.Equal(domain.MortgageActive, created.Status)
	// principal 20000 at 5% fixed over 365 days weekly: total frozen at 21000.00
	suite.True(created.AmountTotal.Equal(decimal.RequireFromString("21000.00")), "got total %s", created.AmountTotal)
	suite.True(created.AmountPaid.Equal(req.InitialDeposit))
	suite.Equal(req.StartDate.AddDate(0, 0, 7), created.NextPaymentDue)
	suite.Equal(suite.employee.UserID, created.CreatedBy)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestCreateMortgage_ForbiddenForBorrower() {
	ctx := context.Background()
	req := validCreateRequest(suite.propertyID, suite.borrower.UserID)

	_, err := suite.service.CreateMortgage(ctx, req, suite.borrower)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMortgageRepo.AssertNotCalled(suite.T(), "SaveMortgage", mock.Anything, mock.Anything)
}

func (suite *MortgageServiceTestSuite) TestCreateMortgage_PropertyNotFound() {
	ctx := context.Background()
	req := validCreateRequest(suite.propertyID, suite.borrower.UserID)

	suite.mockPropertySvc.On("GetPropertyPrice", ctx, suite.propertyID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateMortgage(ctx, req, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMortgageRepo.AssertNotCalled(suite.T(), "SaveMortgage", mock.Anything, mock.Anything)
}

func (suite *MortgageServiceTestSuite) TestCreateMortgage_NegativeDeposit() {
	ctx := context.Background()
	req := validCreateRequest(suite.propertyID, suite.borrower.UserID)
	req.InitialDeposit = decimal.NewFromInt(-5)

	_, err := suite.service.CreateMortgage(ctx, req, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MortgageServiceTestSuite) TestCreateMortgage_DepositCoversPrice() {
	ctx := context.Background()
	req := validCreateRequest(suite.propertyID, suite.borrower.UserID)
	req.InitialDeposit = decimal.NewFromInt(30000)

	suite.mockPropertySvc.On("GetPropertyPrice", ctx, suite.propertyID).Return(decimal.NewFromInt(21000), nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, suite.borrower.UserID).Return(&domain.User{UserID: suite.borrower.UserID}, nil).Once()
	suite.mockMortgageRepo.On("SaveMortgage", ctx, mock.AnythingOfType("domain.Mortgage")).Return(nil).Once()

	created, err := suite.service.CreateMortgage(ctx, req, suite.employee)

	suite.Require().NoError(err)
	// Zero principal: the mortgage starts active with a zero frozen total and
	// completes on the first booked payment.
	suite.True(created.AmountTotal.IsZero())
	suite.Equal(domain.MortgageActive, created.Status)
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	req := dto.RecordPaymentRequest{
		Amount:      decimal.RequireFromString("403.85"),
		PaymentDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

	updated := *mortgage
	updated.AmountPaid = mortgage.AmountPaid.Add(req.Amount)
	updated.NextPaymentDue = mortgage.NextPaymentDue.AddDate(0, 0, 7)
	suite.mockMortgageRepo.On("BookPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.LedgerEntry")).Return(&updated, nil).Once()

	payment, err := suite.service.RecordPayment(ctx, mortgage.MortgageID, req, suite.borrower)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(mortgage.MortgageID, payment.MortgageID)
	suite.True(payment.Amount.Equal(req.Amount))
	suite.Equal(suite.borrower.UserID, payment.CreatedBy)

	// The write-through ledger entry must reference the mortgage and carry
	// the borrower, not the acting staff member.
	bookCall := suite.mockMortgageRepo.Calls[1]
	entry := bookCall.Arguments.Get(2).(domain.LedgerEntry)
	suite.Equal(domain.EntryMortgagePayment, entry.Kind)
	suite.Equal(mortgage.UserID, entry.UserID)
	suite.Require().NotNil(entry.ReferenceID)
	suite.Equal(mortgage.MortgageID, *entry.ReferenceID)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	req := dto.RecordPaymentRequest{
		Amount:      decimal.Zero,
		PaymentDate: time.Now(),
	}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

	_, err := suite.service.RecordPayment(ctx, mortgage.MortgageID, req, suite.borrower)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMortgageRepo.AssertNotCalled(suite.T(), "BookPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_MissingDate() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100)}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

	_, err := suite.service.RecordPayment(ctx, mortgage.MortgageID, req, suite.borrower)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_TerminalMortgage() {
	ctx := context.Background()
	for _, status := range []domain.MortgageStatus{domain.MortgageCompleted, domain.MortgageDefaulted} {
		mortgage := suite.activeMortgage()
		mortgage.Status = status
		req := dto.RecordPaymentRequest{
			Amount:      decimal.NewFromInt(100),
			PaymentDate: time.Now(),
		}

		suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

		_, err := suite.service.RecordPayment(ctx, mortgage.MortgageID, req, suite.employee)

		suite.Require().Error(err, "status %s", status)
		suite.ErrorIs(err, apperrors.ErrConflict)
	}
	suite.mockMortgageRepo.AssertNotCalled(suite.T(), "BookPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_NotFound() {
	ctx := context.Background()
	mortgageID := uuid.NewString()
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgageID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordPayment(ctx, mortgageID, req, suite.employee)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MortgageServiceTestSuite) TestRecordPayment_ForbiddenForStranger() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	stranger := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleUser}
	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

	_, err := suite.service.RecordPayment(ctx, mortgage.MortgageID, req, stranger)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *MortgageServiceTestSuite) TestGetMortgageByID_BorrowerOwnership() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil)

	got, err := suite.service.GetMortgageByID(ctx, mortgage.MortgageID, suite.borrower)
	suite.Require().NoError(err)
	suite.Equal(mortgage.MortgageID, got.MortgageID)

	stranger := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleUser}
	_, err = suite.service.GetMortgageByID(ctx, mortgage.MortgageID, stranger)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.GetMortgageByID(ctx, mortgage.MortgageID, suite.employee)
	suite.NoError(err)
}

func (suite *MortgageServiceTestSuite) TestListMortgages_BorrowerScoped() {
	ctx := context.Background()

	suite.mockMortgageRepo.On("ListMortgagesByUser", ctx, suite.borrower.UserID, 20, 0).Return([]domain.Mortgage{}, nil).Once()

	_, err := suite.service.ListMortgages(ctx, dto.ListMortgagesParams{}, suite.borrower)
	suite.Require().NoError(err)

	// A borrower asking for someone else's mortgages is rejected outright.
	_, err = suite.service.ListMortgages(ctx, dto.ListMortgagesParams{UserID: uuid.NewString()}, suite.borrower)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestListMortgages_StaffSeesAll() {
	ctx := context.Background()

	suite.mockMortgageRepo.On("ListMortgages", ctx, 20, 0).Return([]domain.Mortgage{}, nil).Once()

	_, err := suite.service.ListMortgages(ctx, dto.ListMortgagesParams{}, suite.employee)
	suite.Require().NoError(err)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestGetMortgageMetrics_Derived() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	mortgage.AmountPaid = decimal.RequireFromString("10500.00")

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()

	metrics, err := suite.service.GetMortgageMetrics(ctx, mortgage.MortgageID, suite.borrower)

	suite.Require().NoError(err)
	suite.True(metrics.RemainingBalance.Equal(decimal.RequireFromString("10500.00")))
	suite.True(metrics.ProgressPercentage.Equal(decimal.NewFromInt(50)))
}

func (suite *MortgageServiceTestSuite) TestUpdateMortgage_NeverTouchesTotal() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	newRate := decimal.NewFromFloat(0.07)
	req := dto.UpdateMortgageRequest{InterestRate: &newRate}

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()
	suite.mockMortgageRepo.On("UpdateMortgageDetails", ctx, mock.AnythingOfType("domain.Mortgage")).Return(nil).Once()

	updated, err := suite.service.UpdateMortgage(ctx, mortgage.MortgageID, req, suite.employee)

	suite.Require().NoError(err)
	suite.True(updated.InterestRate.Equal(newRate))
	// The frozen total must survive parameter edits untouched.
	suite.True(updated.AmountTotal.Equal(decimal.RequireFromString("21000.00")))
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestRecomputeTotal_RewritesFrozenTotal() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()
	mortgage.InterestRate = decimal.NewFromFloat(0.10)

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()
	suite.mockPropertySvc.On("GetPropertyPrice", ctx, suite.propertyID).Return(decimal.NewFromInt(21000), nil).Once()
	// 20000 principal at 10% fixed
	expected := decimal.RequireFromString("22000.00")
	suite.mockMortgageRepo.On("UpdateAmountTotal", ctx, mortgage.MortgageID, expected, suite.employee.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.RecomputeTotal(ctx, mortgage.MortgageID, suite.employee)

	suite.Require().NoError(err)
	suite.True(updated.AmountTotal.Equal(expected), "got %s", updated.AmountTotal)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestMarkDefaulted_ActiveOnly() {
	ctx := context.Background()
	mortgage := suite.activeMortgage()

	suite.mockMortgageRepo.On("FindMortgageByID", ctx, mortgage.MortgageID).Return(mortgage, nil).Once()
	suite.mockMortgageRepo.On("UpdateMortgageStatus", ctx, mortgage.MortgageID, domain.MortgageDefaulted, suite.employee.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.MarkDefaulted(ctx, mortgage.MortgageID, suite.employee)
	suite.Require().NoError(err)
	suite.Equal(domain.MortgageDefaulted, updated.Status)

	completed := suite.activeMortgage()
	completed.Status = domain.MortgageCompleted
	suite.mockMortgageRepo.On("FindMortgageByID", ctx, completed.MortgageID).Return(completed, nil).Once()

	_, err = suite.service.MarkDefaulted(ctx, completed.MortgageID, suite.employee)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestDeleteMortgage_AdminOnly() {
	ctx := context.Background()
	mortgageID := uuid.NewString()

	err := suite.service.DeleteMortgage(ctx, mortgageID, suite.employee)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockMortgageRepo.On("DeleteMortgage", ctx, mortgageID).Return(nil).Once()
	err = suite.service.DeleteMortgage(ctx, mortgageID, suite.admin)
	suite.NoError(err)
	suite.mockMortgageRepo.AssertExpectations(suite.T())
}

func (suite *MortgageServiceTestSuite) TestCompletionViaApplyPayment() {
	// The completion transition itself lives in the finance package; this
	// exercises it the way the repository does under the row lock.
	mortgage := suite.activeMortgage()
	mortgage.AmountPaid = decimal.RequireFromString("20900.00")

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		MortgageID:  mortgage.MortgageID,
		Amount:      decimal.RequireFromString("150.00"), // overshoot past the total
		PaymentDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	dueBefore := mortgage.NextPaymentDue

	err := finance.ApplyPayment(mortgage, payment)

	suite.Require().NoError(err)
	suite.Equal(domain.MortgageCompleted, mortgage.Status)
	suite.True(mortgage.AmountPaid.GreaterThanOrEqual(mortgage.AmountTotal))
	// Completion leaves the due-date cursor where it was.
	suite.Equal(dueBefore, mortgage.NextPaymentDue)
}

func TestMortgageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MortgageServiceTestSuite))
}
