package repositories

import (
	"context"
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MortgageReader defines read operations for mortgage data.
type MortgageReader interface {
	// FindMortgageByID retrieves a specific mortgage by its unique identifier.
	FindMortgageByID(ctx context.Context, mortgageID string) (*domain.Mortgage, error)

	// ListMortgagesByUser retrieves a paginated list of a borrower's mortgages.
	ListMortgagesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Mortgage, error)

	// ListMortgages retrieves a paginated list of all mortgages (staff view).
	ListMortgages(ctx context.Context, limit int, offset int) ([]domain.Mortgage, error)

	// FindPaymentsByMortgageID retrieves the full payment history for a mortgage,
	// oldest first.
	FindPaymentsByMortgageID(ctx context.Context, mortgageID string) ([]domain.Payment, error)
}

// MortgageWriter defines write operations for mortgage data.
type MortgageWriter interface {
	// SaveMortgage persists a newly created mortgage.
	SaveMortgage(ctx context.Context, mortgage domain.Mortgage) error

	// BookPayment atomically appends the payment, folds it into the mortgage
	// row (amountPaid, lastPaymentDate, nextPaymentDue/status) and writes the
	// accompanying entry into the portal-wide financial ledger. The mortgage
	// row is locked for the duration so concurrent bookings serialize per
	// mortgage. Returns the updated mortgage snapshot.
	BookPayment(ctx context.Context, payment domain.Payment, entry domain.LedgerEntry) (*domain.Mortgage, error)

	// UpdateMortgageDetails updates the editable loan parameters and notes.
	// It never touches amountTotal, amountPaid or the due-date cursor.
	UpdateMortgageDetails(ctx context.Context, mortgage domain.Mortgage) error

	// UpdateMortgageStatus performs an administrative status change.
	UpdateMortgageStatus(ctx context.Context, mortgageID string, status domain.MortgageStatus, updatedByUserID string, updatedAt time.Time) error

	// UpdateAmountTotal rewrites the frozen total. Only the explicit recompute
	// operation calls this.
	UpdateAmountTotal(ctx context.Context, mortgageID string, amountTotal decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// DeleteMortgage removes a mortgage and, by cascade, its payment history.
	DeleteMortgage(ctx context.Context, mortgageID string) error
}

// MortgageRepositoryFacade combines all mortgage-related repository interfaces.
type MortgageRepositoryFacade interface {
	MortgageReader
	MortgageWriter
}
