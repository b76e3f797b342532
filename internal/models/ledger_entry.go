package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UserID      string          `json:"userID"`
	ReferenceID *string         `json:"referenceID,omitempty"`
	EntryDate   time.Time       `json:"entryDate"`
	AuditFields
}
