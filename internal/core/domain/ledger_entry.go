package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryKind classifies entries in the portal-wide financial ledger.
type LedgerEntryKind string

const (
	EntryDeposit         LedgerEntryKind = "DEPOSIT"
	EntryWithdrawal      LedgerEntryKind = "WITHDRAWAL"
	EntryPropertySale    LedgerEntryKind = "PROPERTY_SALE"
	EntryMortgagePayment LedgerEntryKind = "MORTGAGE_PAYMENT"
)

// LedgerEntry is one append-only record in the portal-wide financial ledger.
// The mortgage ledger writes one MORTGAGE_PAYMENT entry through for every
// booked payment; deposits, withdrawals and sales are written by their own
// surfaces.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"` // Primary Key (UUID)
	Kind        LedgerEntryKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UserID      string          `json:"userID"`                // Payer / account holder
	ReferenceID *string         `json:"referenceID,omitempty"` // e.g. the mortgage ID
	EntryDate   time.Time       `json:"entryDate"`
	AuditFields
}
