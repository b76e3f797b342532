package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single booked installment against a mortgage. Append-only:
// payments are never edited or deleted individually, only cascaded away when
// the owning mortgage is deleted.
type Payment struct {
	PaymentID     string          `json:"paymentID"`  // Primary Key (UUID)
	MortgageID    string          `json:"mortgageID"` // FK -> Mortgage (Not Null)
	Amount        decimal.Decimal `json:"amount"`     // Positive value
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod,omitempty"` // Optional free text
	Notes         string          `json:"notes,omitempty"`
	AuditFields
}
