package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestType selects the interest model used when the loan total is computed.
type InterestType string

const (
	// InterestFixed is simple interest charged once on the full principal;
	// the total owed does not depend on the repayment schedule.
	InterestFixed InterestType = "FIXED"
	// InterestCompound recomputes interest each period against the shrinking
	// outstanding balance (declining-balance model).
	InterestCompound InterestType = "COMPOUND"
)

// PaymentFrequency is the cadence at which installments fall due.
type PaymentFrequency string

const (
	FrequencyDaily   PaymentFrequency = "DAILY"
	FrequencyBiDaily PaymentFrequency = "BI_DAILY"
	FrequencyWeekly  PaymentFrequency = "WEEKLY"
)

// MortgageStatus indicates the lifecycle state of a mortgage.
type MortgageStatus string

const (
	// MortgageActive is the initial state; payments are expected.
	MortgageActive MortgageStatus = "ACTIVE"
	// MortgageCompleted is reached automatically once amountPaid >= amountTotal. Terminal.
	MortgageCompleted MortgageStatus = "COMPLETED"
	// MortgageDefaulted is set by an administrative action, never derived. Terminal.
	MortgageDefaulted MortgageStatus = "DEFAULTED"
)

// Mortgage is the aggregate root owned by the mortgage ledger.
//
// AmountTotal is frozen at creation time: it is derived exactly once from the
// loan parameters and is only ever rewritten by an explicit recompute request.
// AmountPaid starts at the initial deposit and only increases through booked
// payments; the ledger service is the sole writer.
type Mortgage struct {
	MortgageID      string           `json:"mortgageID"` // Primary Key (UUID)
	PropertyID      string           `json:"propertyID"` // FK -> Property (Not Null)
	UserID          string           `json:"userID"`     // FK -> User, the borrower (Not Null)
	InitialDeposit  decimal.Decimal  `json:"initialDeposit"`
	InterestRate    decimal.Decimal  `json:"interestRate"` // Annual rate as a fraction, 0.05 = 5%
	InterestType    InterestType     `json:"interestType"`
	Frequency       PaymentFrequency `json:"paymentFrequency"`
	DurationDays    int              `json:"durationDays"`
	AmountTotal     decimal.Decimal  `json:"amountTotal"` // Frozen at creation
	AmountPaid      decimal.Decimal  `json:"amountPaid"`  // Monotonically non-decreasing
	StartDate       time.Time        `json:"startDate"`   // Calendar date, midnight UTC
	NextPaymentDue  time.Time        `json:"nextPaymentDue"`
	LastPaymentDate *time.Time       `json:"lastPaymentDate,omitempty"`
	Status          MortgageStatus   `json:"status"`
	Notes           string           `json:"notes"`
	AuditFields

	// Payments is populated on demand; it is not loaded by default.
	Payments []Payment `json:"payments,omitempty"`
}

// Terminal reports whether the mortgage is in a state that accepts no further transitions.
func (m *Mortgage) Terminal() bool {
	return m.Status == MortgageCompleted || m.Status == MortgageDefaulted
}
