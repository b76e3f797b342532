package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/middleware"
)

// ledgerService is the portal-wide financial transaction ledger. Mortgage
// payment entries do not pass through here; the mortgage repository writes
// those inside its booking transaction.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

var validEntryKinds = map[domain.LedgerEntryKind]bool{
	domain.EntryDeposit:         true,
	domain.EntryWithdrawal:      true,
	domain.EntryPropertySale:    true,
	domain.EntryMortgagePayment: true,
}

// AppendEntry validates and appends one entry to the ledger.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !validEntryKinds[entry.Kind] {
		return nil, apperrors.NewValidationError("unknown ledger entry kind " + string(entry.Kind))
	}
	if !entry.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("ledger entry amount must be positive")
	}
	if entry.UserID == "" {
		return nil, apperrors.NewValidationError("ledger entry user is required")
	}

	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = time.Now().UTC()
	}

	if err := s.ledgerRepo.SaveLedgerEntry(ctx, entry); err != nil {
		logger.Error("Failed to append ledger entry", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return nil, err
	}
	return &entry, nil
}

// ListEntriesByUser retrieves a page of a user's ledger entries, newest
// first. Borrowers see only their own; staff may read any user's ledger.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ListEntriesByUser(ctx context.Context, userID string, limit int, offset int, actor domain.Actor) ([]domain.LedgerEntry, error) {
	if userID != actor.UserID && !actor.Role.AtLeast(domain.RoleEmployee) {
		return nil, apperrors.ErrForbidden
	}
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.ledgerRepo.ListLedgerEntriesByUser(ctx, userID, limit, offset)
}
