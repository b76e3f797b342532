package services

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// LedgerSvcFacade is the portal-wide financial transaction ledger. Deposits,
// withdrawals and property sales append here directly; the mortgage ledger
// writes one MORTGAGE_PAYMENT entry through for every booked payment.
type LedgerSvcFacade interface {
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
	ListEntriesByUser(ctx context.Context, userID string, limit int, offset int, actor domain.Actor) ([]domain.LedgerEntry, error)
}
