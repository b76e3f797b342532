package services

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	"github.com/hestiabank/property_portal_app/internal/dto"
)

// MortgageSvcFacade is the mortgage ledger: the sole owner of all mutating
// operations on the Mortgage aggregate, plus its read paths and the derived
// metrics view.
type MortgageSvcFacade interface {
	// CreateMortgage validates the loan parameters, resolves the property
	// price, invokes the amortization calculator and persists a new active
	// mortgage with its total frozen.
	CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error)

	// GetMortgageByID retrieves one mortgage. Borrowers see only their own;
	// employees and admins see all.
	GetMortgageByID(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error)

	// ListMortgages lists mortgages, filtered to the actor's own unless the
	// actor is staff.
	ListMortgages(ctx context.Context, params dto.ListMortgagesParams, actor domain.Actor) ([]domain.Mortgage, error)

	// RecordPayment books one payment atomically: payment appended, mortgage
	// row updated, write-through ledger entry recorded, all or nothing.
	RecordPayment(ctx context.Context, mortgageID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Payment, error)

	// ListPayments returns the payment history for a mortgage.
	ListPayments(ctx context.Context, mortgageID string, actor domain.Actor) ([]domain.Payment, error)

	// GetMortgageMetrics recomputes the derived view (remaining balance,
	// current installment, progress, overdue state) for a mortgage snapshot.
	GetMortgageMetrics(ctx context.Context, mortgageID string, actor domain.Actor) (*finance.MortgageMetrics, error)

	// UpdateMortgage edits loan parameters and notes. The frozen total is
	// never touched by this operation.
	UpdateMortgage(ctx context.Context, mortgageID string, req dto.UpdateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error)

	// RecomputeTotal re-derives the frozen amountTotal from the mortgage's
	// current parameters. This is the only path that rewrites the total after
	// creation and requires an explicit request.
	RecomputeTotal(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error)

	// MarkDefaulted performs the administrative active -> defaulted transition.
	MarkDefaulted(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error)

	// DeleteMortgage removes a mortgage and cascades away its payment history.
	DeleteMortgage(ctx context.Context, mortgageID string, actor domain.Actor) error
}
