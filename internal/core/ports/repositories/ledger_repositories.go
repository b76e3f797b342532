package repositories

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// LedgerEntryWriter appends records to the portal-wide financial ledger.
// The ledger is append-only; there are no update or delete operations.
type LedgerEntryWriter interface {
	SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerEntryReader defines read operations for ledger entries.
type LedgerEntryReader interface {
	ListLedgerEntriesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines the ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
