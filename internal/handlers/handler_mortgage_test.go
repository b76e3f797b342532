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
	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/handlers"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MortgageService ---
type MockMortgageService struct {
	mock.Mock
}

func (m *MockMortgageService) CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) GetMortgageByID(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) ListMortgages(ctx context.Context, params dto.ListMortgagesParams, actor domain.Actor) ([]domain.Mortgage, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) RecordPayment(ctx context.Context, mortgageID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	args := m.Called(ctx, mortgageID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockMortgageService) ListPayments(ctx context.Context, mortgageID string, actor domain.Actor) ([]domain.Payment, error) {
	args := m.Called(ctx, mortgageID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockMortgageService) GetMortgageMetrics(ctx context.Context, mortgageID string, actor domain.Actor) (*finance.MortgageMetrics, error) {
	args := m.Called(ctx, mortgageID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.MortgageMetrics), args.Error(1)
}
func (m *MockMortgageService) UpdateMortgage(ctx context.Context, mortgageID string, req dto.UpdateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) RecomputeTotal(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) MarkDefaulted(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	args := m.Called(ctx, mortgageID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mortgage), args.Error(1)
}
func (m *MockMortgageService) DeleteMortgage(ctx context.Context, mortgageID string, actor domain.Actor) error {
	args := m.Called(ctx, mortgageID, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.MortgageSvcFacade = (*MockMortgageService)(nil)

// --- Test Suite ---
type MortgageHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockMortgageService *MockMortgageService
	jwtSecret           string
}

// generateTestToken creates a signed JWT carrying the given role claim.
func (suite *MortgageHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	claims := middleware.PortalClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "portal-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *MortgageHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockMortgageService = new(MockMortgageService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterMortgageRoutes(v1, suite.mockMortgageService)
}

// performRequest runs a request through the router with an optional JSON body
// and bearer token, returning the recorder.
func (suite *MortgageHandlerTestSuite) performRequest(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleMortgage(mortgageID, userID string) *domain.Mortgage {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Mortgage{
		MortgageID:     mortgageID,
		PropertyID:     uuid.NewString(),
		UserID:         userID,
		InitialDeposit: decimal.NewFromInt(5000),
		InterestRate:   decimal.NewFromFloat(0.05),
		InterestType:   domain.InterestFixed,
		Frequency:      domain.FrequencyWeekly,
		DurationDays:   365,
		AmountTotal:    decimal.RequireFromString("21000.00"),
		AmountPaid:     decimal.NewFromInt(5000),
		StartDate:      start,
		NextPaymentDue: start.AddDate(0, 0, 7),
		Status:         domain.MortgageActive,
	}
}

// --- Test Cases ---

func (suite *MortgageHandlerTestSuite) TestCreateMortgage_Success() {
	employeeID := uuid.NewString()
	borrowerID := uuid.NewString()
	expected := sampleMortgage(uuid.NewString(), borrowerID)

	reqBody := dto.CreateMortgageRequest{
		PropertyID:       expected.PropertyID,
		UserID:           borrowerID,
		InitialDeposit:   decimal.NewFromInt(5000),
		InterestRate:     decimal.NewFromFloat(0.05),
		InterestType:     "FIXED",
		PaymentFrequency: "WEEKLY",
		DurationDays:     365,
		StartDate:        expected.StartDate,
	}

	suite.mockMortgageService.On("CreateMortgage",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateMortgageRequest) bool {
			return r.PropertyID == expected.PropertyID && r.UserID == borrowerID
		}),
		domain.Actor{UserID: employeeID, Role: domain.RoleEmployee},
	).Return(expected, nil).Once()

	token := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w := suite.performRequest(http.MethodPost, "/api/v1/mortgages", reqBody, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MortgageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.MortgageID, resp.MortgageID)
	suite.True(resp.AmountTotal.Equal(expected.AmountTotal))
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestCreateMortgage_ForbiddenForBorrowerRole() {
	borrowerID := uuid.NewString()
	reqBody := dto.CreateMortgageRequest{
		PropertyID:       uuid.NewString(),
		UserID:           borrowerID,
		InterestType:     "FIXED",
		PaymentFrequency: "WEEKLY",
		DurationDays:     365,
		StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	w := suite.performRequest(http.MethodPost, "/api/v1/mortgages", reqBody, token)

	// The role gate rejects before the service is reached.
	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "CreateMortgage")
}

func (suite *MortgageHandlerTestSuite) TestCreateMortgage_InvalidBody() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	w := suite.performRequest(http.MethodPost, "/api/v1/mortgages", map[string]any{
		"propertyID": "p-1",
		// userID, interestType, paymentFrequency, durationDays, startDate missing
	}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "CreateMortgage")
}

func (suite *MortgageHandlerTestSuite) TestGetMortgage_Success() {
	borrowerID := uuid.NewString()
	expected := sampleMortgage(uuid.NewString(), borrowerID)

	suite.mockMortgageService.On("GetMortgageByID",
		mock.Anything, expected.MortgageID,
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(expected, nil).Once()

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+expected.MortgageID, nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MortgageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.MortgageID, resp.MortgageID)
	suite.Equal(borrowerID, resp.UserID)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestGetMortgage_NotFound() {
	mortgageID := uuid.NewString()
	actorID := uuid.NewString()

	suite.mockMortgageService.On("GetMortgageByID",
		mock.Anything, mortgageID,
		domain.Actor{UserID: actorID, Role: domain.RoleEmployee},
	).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(actorID, domain.RoleEmployee)
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+mortgageID, nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestGetMortgage_ForbiddenMapsTo403() {
	mortgageID := uuid.NewString()
	strangerID := uuid.NewString()

	suite.mockMortgageService.On("GetMortgageByID",
		mock.Anything, mortgageID,
		domain.Actor{UserID: strangerID, Role: domain.RoleUser},
	).Return(nil, apperrors.ErrForbidden).Once()

	token := suite.generateTestToken(strangerID, domain.RoleUser)
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+mortgageID, nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	// The forbidden body is generic so it does not leak resource existence.
	suite.Contains(w.Body.String(), "Operation not permitted")
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestGetMortgage_MissingToken() {
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+uuid.NewString(), nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "GetMortgageByID")
}

func (suite *MortgageHandlerTestSuite) TestGetMortgage_ExpiredToken() {
	claims := middleware.PortalClaims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+uuid.NewString(), nil, signed)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")
}

func (suite *MortgageHandlerTestSuite) TestListMortgages_Success() {
	borrowerID := uuid.NewString()
	expected := []domain.Mortgage{*sampleMortgage(uuid.NewString(), borrowerID)}

	suite.mockMortgageService.On("ListMortgages",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListMortgagesParams) bool {
			return p.Limit == 10 && p.Offset == 0
		}),
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(expected, nil).Once()

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages?limit=10", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMortgagesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Mortgages, 1)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestRecordPayment_Success() {
	borrowerID := uuid.NewString()
	mortgageID := uuid.NewString()
	paymentDate := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	expected := &domain.Payment{
		PaymentID:   uuid.NewString(),
		MortgageID:  mortgageID,
		Amount:      decimal.RequireFromString("403.85"),
		PaymentDate: paymentDate,
	}

	suite.mockMortgageService.On("RecordPayment",
		mock.Anything, mortgageID,
		mock.MatchedBy(func(r dto.RecordPaymentRequest) bool {
			return r.Amount.Equal(decimal.RequireFromString("403.85"))
		}),
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(expected, nil).Once()

	reqBody := dto.RecordPaymentRequest{
		Amount:      decimal.RequireFromString("403.85"),
		PaymentDate: paymentDate,
	}

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	url := fmt.Sprintf("/api/v1/mortgages/%s/payments", mortgageID)
	w := suite.performRequest(http.MethodPost, url, reqBody, token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.PaymentID, resp.PaymentID)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestRecordPayment_TerminalMortgageMapsTo409() {
	borrowerID := uuid.NewString()
	mortgageID := uuid.NewString()

	suite.mockMortgageService.On("RecordPayment",
		mock.Anything, mortgageID, mock.Anything,
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(nil, apperrors.NewAppError(http.StatusConflict, "mortgage is completed", apperrors.ErrConflict)).Once()

	reqBody := dto.RecordPaymentRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	url := fmt.Sprintf("/api/v1/mortgages/%s/payments", mortgageID)
	w := suite.performRequest(http.MethodPost, url, reqBody, token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestRecordPayment_ValidationErrorMapsTo400() {
	borrowerID := uuid.NewString()
	mortgageID := uuid.NewString()

	suite.mockMortgageService.On("RecordPayment",
		mock.Anything, mortgageID, mock.Anything,
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(nil, apperrors.NewAppError(http.StatusBadRequest, "payment amount must be positive", apperrors.ErrValidation)).Once()

	reqBody := dto.RecordPaymentRequest{
		Amount:      decimal.NewFromInt(-5),
		PaymentDate: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	url := fmt.Sprintf("/api/v1/mortgages/%s/payments", mortgageID)
	w := suite.performRequest(http.MethodPost, url, reqBody, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestGetMetrics_Success() {
	borrowerID := uuid.NewString()
	mortgageID := uuid.NewString()
	metrics := &finance.MortgageMetrics{
		RemainingBalance:           decimal.RequireFromString("10500.005"),
		CurrentInstallment:         decimal.RequireFromString("403.846"),
		ProgressPercentage:         decimal.RequireFromString("50.0"),
		IsOverdue:                  true,
		DaysOverdue:                3,
		TotalScheduledInstallments: 52,
		PaymentsMade:               26,
	}

	suite.mockMortgageService.On("GetMortgageMetrics",
		mock.Anything, mortgageID,
		domain.Actor{UserID: borrowerID, Role: domain.RoleUser},
	).Return(metrics, nil).Once()

	token := suite.generateTestToken(borrowerID, domain.RoleUser)
	w := suite.performRequest(http.MethodGet, "/api/v1/mortgages/"+mortgageID+"/metrics", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MortgageMetricsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(mortgageID, resp.MortgageID)
	// Money and percentage round to 2 decimal places at the edge.
	suite.True(resp.RemainingBalance.Equal(decimal.RequireFromString("10500.01")))
	suite.True(resp.AmountPerInstallment.Equal(decimal.RequireFromString("403.85")))
	suite.True(resp.IsOverdue)
	suite.Equal(3, resp.DaysOverdue)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestDeleteMortgage_AdminOnly() {
	mortgageID := uuid.NewString()

	// Employee role is rejected by the route gate.
	employeeToken := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	w := suite.performRequest(http.MethodDelete, "/api/v1/mortgages/"+mortgageID, nil, employeeToken)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "DeleteMortgage")

	// Admin role passes through to the service.
	adminID := uuid.NewString()
	suite.mockMortgageService.On("DeleteMortgage",
		mock.Anything, mortgageID,
		domain.Actor{UserID: adminID, Role: domain.RoleAdmin},
	).Return(nil).Once()

	adminToken := suite.generateTestToken(adminID, domain.RoleAdmin)
	w = suite.performRequest(http.MethodDelete, "/api/v1/mortgages/"+mortgageID, nil, adminToken)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestMarkDefaulted_RequiresEmployeeRole() {
	mortgageID := uuid.NewString()

	borrowerToken := suite.generateTestToken(uuid.NewString(), domain.RoleUser)
	w := suite.performRequest(http.MethodPost, "/api/v1/mortgages/"+mortgageID+"/default", nil, borrowerToken)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMortgageService.AssertNotCalled(suite.T(), "MarkDefaulted")

	employeeID := uuid.NewString()
	defaulted := sampleMortgage(mortgageID, uuid.NewString())
	defaulted.Status = domain.MortgageDefaulted
	suite.mockMortgageService.On("MarkDefaulted",
		mock.Anything, mortgageID,
		domain.Actor{UserID: employeeID, Role: domain.RoleEmployee},
	).Return(defaulted, nil).Once()

	employeeToken := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w = suite.performRequest(http.MethodPost, "/api/v1/mortgages/"+mortgageID+"/default", nil, employeeToken)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MortgageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.MortgageDefaulted), resp.Status)
	suite.mockMortgageService.AssertExpectations(suite.T())
}

func (suite *MortgageHandlerTestSuite) TestRecomputeTotal_Success() {
	mortgageID := uuid.NewString()
	employeeID := uuid.NewString()
	recomputed := sampleMortgage(mortgageID, uuid.NewString())
	recomputed.AmountTotal = decimal.RequireFromString("22000.00")

	suite.mockMortgageService.On("RecomputeTotal",
		mock.Anything, mortgageID,
		domain.Actor{UserID: employeeID, Role: domain.RoleEmployee},
	).Return(recomputed, nil).Once()

	token := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w := suite.performRequest(http.MethodPost, "/api/v1/mortgages/"+mortgageID+"/recompute", nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MortgageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.AmountTotal.Equal(decimal.RequireFromString("22000.00")))
	suite.mockMortgageService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestMortgageHandler(t *testing.T) {
	suite.Run(t, new(MortgageHandlerTestSuite))
}
