package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MortgageStatus mirrors domain.MortgageStatus at the storage layer.
type MortgageStatus string

const (
	MortgageActive    MortgageStatus = "ACTIVE"
	MortgageCompleted MortgageStatus = "COMPLETED"
	MortgageDefaulted MortgageStatus = "DEFAULTED"
)

// Mortgage is the mortgages table row.
type Mortgage struct {
	MortgageID      string          `json:"mortgageID"`
	PropertyID      string          `json:"propertyID"`
	UserID          string          `json:"userID"`
	InitialDeposit  decimal.Decimal `json:"initialDeposit"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	InterestType    string          `json:"interestType"`
	Frequency       string          `json:"paymentFrequency"`
	DurationDays    int             `json:"durationDays"`
	AmountTotal     decimal.Decimal `json:"amountTotal"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	StartDate       time.Time       `json:"startDate"`
	NextPaymentDue  time.Time       `json:"nextPaymentDue"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
	Status          MortgageStatus  `json:"status"`
	Notes           string          `json:"notes"`
	AuditFields
}

// Payment is the mortgage_payments table row.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	MortgageID    string          `json:"mortgageID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	AuditFields
}
