package dto

import (
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	"github.com/shopspring/decimal"
)

// CreateMortgageRequest carries the loan parameters for mortgage creation.
// The property price is looked up server-side; only the deposit is supplied.
type CreateMortgageRequest struct {
	PropertyID       string          `json:"propertyID" binding:"required"`
	UserID           string          `json:"userID" binding:"required"` // Borrower
	InitialDeposit   decimal.Decimal `json:"initialDeposit"`
	InterestRate     decimal.Decimal `json:"interestRate"` // Annual fraction, 0.05 = 5%
	InterestType     string          `json:"interestType" binding:"required,interesttype"`
	PaymentFrequency string          `json:"paymentFrequency" binding:"required,paymentfrequency"`
	DurationDays     int             `json:"durationDays" binding:"required,gt=0"`
	StartDate        time.Time       `json:"startDate" binding:"required"`
	Notes            string          `json:"notes"`
}

// RecordPaymentRequest books one installment against a mortgage.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// UpdateMortgageRequest edits loan parameters after creation. The frozen
// amountTotal is deliberately absent: edits never recompute it implicitly.
type UpdateMortgageRequest struct {
	InterestRate     *decimal.Decimal `json:"interestRate,omitempty"`
	InterestType     *string          `json:"interestType,omitempty" binding:"omitempty,interesttype"`
	PaymentFrequency *string          `json:"paymentFrequency,omitempty" binding:"omitempty,paymentfrequency"`
	DurationDays     *int             `json:"durationDays,omitempty" binding:"omitempty,gt=0"`
	Notes            *string          `json:"notes,omitempty"`
}

// ListMortgagesParams holds pagination and filtering for mortgage listings.
type ListMortgagesParams struct {
	UserID string `form:"userID"` // Optional borrower filter; staff only
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// MortgageResponse defines the data returned for a mortgage.
type MortgageResponse struct {
	MortgageID       string          `json:"mortgageID"`
	PropertyID       string          `json:"propertyID"`
	UserID           string          `json:"userID"`
	InitialDeposit   decimal.Decimal `json:"initialDeposit"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	InterestType     string          `json:"interestType"`
	PaymentFrequency string          `json:"paymentFrequency"`
	DurationDays     int             `json:"durationDays"`
	AmountTotal      decimal.Decimal `json:"amountTotal"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	StartDate        time.Time       `json:"startDate"`
	NextPaymentDue   time.Time       `json:"nextPaymentDue"`
	LastPaymentDate  *time.Time      `json:"lastPaymentDate,omitempty"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// PaymentResponse defines the data returned for a booked payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	MortgageID    string          `json:"mortgageID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// MortgageMetricsResponse is the derived, non-persisted view of a mortgage.
// Money values are rounded to 2 decimal places here, at the presentation edge.
type MortgageMetricsResponse struct {
	MortgageID                 string          `json:"mortgageID"`
	RemainingBalance           decimal.Decimal `json:"remainingBalance"`
	AmountPerInstallment       decimal.Decimal `json:"amountPerInstallment"`
	ProgressPercentage         decimal.Decimal `json:"progressPercentage"`
	IsOverdue                  bool            `json:"isOverdue"`
	DaysOverdue                int             `json:"daysOverdue"`
	TotalScheduledInstallments int             `json:"totalScheduledInstallments"`
	PaymentsMade               int             `json:"paymentsMade"`
}

// ListMortgagesResponse wraps a page of mortgages.
type ListMortgagesResponse struct {
	Mortgages []MortgageResponse `json:"mortgages"`
}

// ListPaymentsResponse wraps a mortgage's payment history.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToMortgageResponse converts a domain.Mortgage to its response DTO.
func ToMortgageResponse(m *domain.Mortgage) MortgageResponse {
	return MortgageResponse{
		MortgageID:       m.MortgageID,
		PropertyID:       m.PropertyID,
		UserID:           m.UserID,
		InitialDeposit:   m.InitialDeposit,
		InterestRate:     m.InterestRate,
		InterestType:     string(m.InterestType),
		PaymentFrequency: string(m.Frequency),
		DurationDays:     m.DurationDays,
		AmountTotal:      m.AmountTotal,
		AmountPaid:       m.AmountPaid,
		StartDate:        m.StartDate,
		NextPaymentDue:   m.NextPaymentDue,
		LastPaymentDate:  m.LastPaymentDate,
		Status:           string(m.Status),
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// ToMortgageResponses converts a slice of domain.Mortgage to response DTOs.
func ToMortgageResponses(ms []domain.Mortgage) []MortgageResponse {
	responses := make([]MortgageResponse, len(ms))
	for i := range ms {
		responses[i] = ToMortgageResponse(&ms[i])
	}
	return responses
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		MortgageID:    p.MortgageID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to response DTOs.
func ToPaymentResponses(ps []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(ps))
	for i := range ps {
		responses[i] = ToPaymentResponse(&ps[i])
	}
	return responses
}

// ToMortgageMetricsResponse converts computed metrics to their response DTO,
// applying the 2-decimal presentation rounding for money and percentage.
func ToMortgageMetricsResponse(mortgageID string, metrics finance.MortgageMetrics) MortgageMetricsResponse {
	return MortgageMetricsResponse{
		MortgageID:                 mortgageID,
		RemainingBalance:           metrics.RemainingBalance.Round(2),
		AmountPerInstallment:       metrics.CurrentInstallment.Round(2),
		ProgressPercentage:         metrics.ProgressPercentage.Round(2),
		IsOverdue:                  metrics.IsOverdue,
		DaysOverdue:                metrics.DaysOverdue,
		TotalScheduledInstallments: metrics.TotalScheduledInstallments,
		PaymentsMade:               metrics.PaymentsMade,
	}
}
