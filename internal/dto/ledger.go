package dto

import (
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for a financial ledger entry.
type LedgerEntryResponse struct {
	EntryID     string          `json:"entryID"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"referenceID,omitempty"`
	EntryDate   time.Time       `json:"entryDate"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		Description: e.Description,
		ReferenceID: e.ReferenceID,
		EntryDate:   e.EntryDate,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to response DTOs.
func ToLedgerEntryResponses(es []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(es))
	for i := range es {
		responses[i] = ToLedgerEntryResponse(&es[i])
	}
	return responses
}
