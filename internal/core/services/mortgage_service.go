package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotPositive = errors.New("payment amount must be positive")
	ErrPaymentDateMissing = errors.New("payment date is required")
	ErrMortgageTerminal   = errors.New("mortgage is in a terminal state")
	ErrNotDefaultable     = errors.New("only an active mortgage can be marked defaulted")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// mortgageService is the mortgage ledger: the sole owner of mortgage
// mutations. All money math is delegated to the finance package; all
// multi-row writes happen inside the repository's booking transaction.
type mortgageService struct {
	mortgageRepo portsrepo.MortgageRepositoryFacade
	propertySvc  portssvc.PropertySvcFacade
	userSvc      portssvc.UserSvcFacade
}

// NewMortgageService creates a new MortgageService.
func NewMortgageService(mortgageRepo portsrepo.MortgageRepositoryFacade, propertySvc portssvc.PropertySvcFacade, userSvc portssvc.UserSvcFacade) portssvc.MortgageSvcFacade {
	return &mortgageService{
		mortgageRepo: mortgageRepo,
		propertySvc:  propertySvc,
		userSvc:      userSvc,
	}
}

// Ensure mortgageService implements the portssvc.MortgageSvcFacade interface
var _ portssvc.MortgageSvcFacade = (*mortgageService)(nil)

// authorizeView checks that the actor may see the given mortgage. Staff see
// every mortgage; borrowers only their own.
func (s *mortgageService) authorizeView(m *domain.Mortgage, actor domain.Actor) error {
	if actor.Role.AtLeast(domain.RoleEmployee) {
		return nil
	}
	if m.UserID == actor.UserID {
		return nil
	}
	return apperrors.ErrForbidden
}

// requireStaff rejects actors below employee.
func requireStaff(actor domain.Actor) error {
	if !actor.Role.AtLeast(domain.RoleEmployee) {
		return apperrors.ErrForbidden
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// CreateMortgage validates the loan parameters, resolves the property price,
// derives the frozen total via the amortization calculator and persists a new
// active mortgage.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) CreateMortgage(ctx context.Context, req dto.CreateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		logger.Warn("Non-staff actor attempted mortgage creation", slog.String("actor_id", actor.UserID))
		return nil, err
	}

	if req.InitialDeposit.IsNegative() {
		return nil, apperrors.NewValidationError("initial deposit must not be negative")
	}
	if req.InterestRate.IsNegative() {
		return nil, apperrors.NewValidationError("interest rate must not be negative")
	}
	if req.StartDate.IsZero() {
		return nil, apperrors.NewValidationError("start date is required")
	}

	// Resolve collaborators before committing money: both lookups surface
	// ErrNotFound for dangling references.
	price, err := s.propertySvc.GetPropertyPrice(ctx, req.PropertyID)
	if err != nil {
		logger.Warn("Property lookup failed during mortgage creation", slog.String("property_id", req.PropertyID), slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := s.userSvc.GetUserByID(ctx, req.UserID); err != nil {
		logger.Warn("Borrower lookup failed during mortgage creation", slog.String("user_id", req.UserID), slog.String("error", err.Error()))
		return nil, err
	}

	// A deposit covering the full price leaves a zero principal: the mortgage
	// is still created active with a zero total and completes on the first
	// booked payment.
	principal := price.Sub(req.InitialDeposit)
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	freq := domain.PaymentFrequency(req.PaymentFrequency)
	itype := domain.InterestType(req.InterestType)

	result, err := finance.Compute(principal, req.InterestRate, req.DurationDays, freq, itype)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	startDate := req.StartDate.UTC()
	nextDue, err := finance.NextDueDate(startDate, freq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	mortgage := domain.Mortgage{
		MortgageID:     uuid.NewString(),
		PropertyID:     req.PropertyID,
		UserID:         req.UserID,
		InitialDeposit: req.InitialDeposit,
		InterestRate:   req.InterestRate,
		InterestType:   itype,
		Frequency:      freq,
		DurationDays:   req.DurationDays,
		AmountTotal:    result.AmountTotal,
		AmountPaid:     req.InitialDeposit,
		StartDate:      startDate,
		NextPaymentDue: nextDue,
		Status:         domain.MortgageActive,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.mortgageRepo.SaveMortgage(ctx, mortgage); err != nil {
		logger.Error("Failed to save mortgage", slog.String("mortgage_id", mortgage.MortgageID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Mortgage created",
		slog.String("mortgage_id", mortgage.MortgageID),
		slog.String("property_id", mortgage.PropertyID),
		slog.String("borrower_id", mortgage.UserID),
		slog.String("amount_total", mortgage.AmountTotal.String()),
	)
	return &mortgage, nil
}

// GetMortgageByID retrieves one mortgage, enforcing borrower ownership.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) GetMortgageByID(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(mortgage, actor); err != nil {
		return nil, err
	}
	return mortgage, nil
}

// ListMortgages lists mortgages. Borrowers are always scoped to their own;
// staff may list everything or filter by borrower.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) ListMortgages(ctx context.Context, params dto.ListMortgagesParams, actor domain.Actor) ([]domain.Mortgage, error) {
	limit := clampLimit(params.Limit)
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	if !actor.Role.AtLeast(domain.RoleEmployee) {
		if params.UserID != "" && params.UserID != actor.UserID {
			return nil, apperrors.ErrForbidden
		}
		return s.mortgageRepo.ListMortgagesByUser(ctx, actor.UserID, limit, offset)
	}

	if params.UserID != "" {
		return s.mortgageRepo.ListMortgagesByUser(ctx, params.UserID, limit, offset)
	}
	return s.mortgageRepo.ListMortgages(ctx, limit, offset)
}

// RecordPayment books one payment against a mortgage. The repository performs
// the actual booking atomically; this method validates, authorizes and builds
// the payment plus its write-through ledger entry.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) RecordPayment(ctx context.Context, mortgageID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(mortgage, actor); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentNotPositive)
	}
	if req.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentDateMissing)
	}

	// Optimistic terminal check; the repository re-checks under the row lock.
	if mortgage.Terminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrMortgageTerminal)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		MortgageID:    mortgageID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate.UTC(),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		AuditFields:   audit,
	}

	referenceID := mortgageID
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		Kind:        domain.EntryMortgagePayment,
		Amount:      req.Amount,
		Description: "Mortgage payment against property " + mortgage.PropertyID,
		UserID:      mortgage.UserID,
		ReferenceID: &referenceID,
		EntryDate:   payment.PaymentDate,
		AuditFields: audit,
	}

	updated, err := s.mortgageRepo.BookPayment(ctx, payment, entry)
	if err != nil {
		logger.Error("Failed to book payment", slog.String("mortgage_id", mortgageID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment booked",
		slog.String("mortgage_id", mortgageID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("status", string(updated.Status)),
	)
	return &payment, nil
}

// ListPayments returns the payment history for a mortgage, oldest first.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) ListPayments(ctx context.Context, mortgageID string, actor domain.Actor) ([]domain.Payment, error) {
	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(mortgage, actor); err != nil {
		return nil, err
	}
	return s.mortgageRepo.FindPaymentsByMortgageID(ctx, mortgageID)
}

// GetMortgageMetrics derives the display metrics for a mortgage as of today.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) GetMortgageMetrics(ctx context.Context, mortgageID string, actor domain.Actor) (*finance.MortgageMetrics, error) {
	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(mortgage, actor); err != nil {
		return nil, err
	}
	metrics := finance.ComputeMetrics(*mortgage, time.Now().UTC())
	return &metrics, nil
}

// UpdateMortgage edits the loan parameters and notes. The frozen amountTotal
// is never recomputed here; callers wanting that must request an explicit
// recompute.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) UpdateMortgage(ctx context.Context, mortgageID string, req dto.UpdateMortgageRequest, actor domain.Actor) (*domain.Mortgage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}

	parameterEdit := req.InterestRate != nil || req.InterestType != nil ||
		req.PaymentFrequency != nil || req.DurationDays != nil
	if mortgage.Terminal() && parameterEdit {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrMortgageTerminal)
	}

	if req.InterestRate != nil {
		if req.InterestRate.IsNegative() {
			return nil, apperrors.NewValidationError("interest rate must not be negative")
		}
		mortgage.InterestRate = *req.InterestRate
	}
	if req.InterestType != nil {
		mortgage.InterestType = domain.InterestType(*req.InterestType)
	}
	if req.PaymentFrequency != nil {
		mortgage.Frequency = domain.PaymentFrequency(*req.PaymentFrequency)
	}
	if req.DurationDays != nil {
		if *req.DurationDays < 1 {
			return nil, apperrors.NewValidationError("duration must be at least one day")
		}
		mortgage.DurationDays = *req.DurationDays
	}
	if req.Notes != nil {
		mortgage.Notes = *req.Notes
	}

	mortgage.LastUpdatedAt = time.Now().UTC()
	mortgage.LastUpdatedBy = actor.UserID

	if err := s.mortgageRepo.UpdateMortgageDetails(ctx, *mortgage); err != nil {
		logger.Error("Failed to update mortgage", slog.String("mortgage_id", mortgageID), slog.String("error", err.Error()))
		return nil, err
	}
	return mortgage, nil
}

// RecomputeTotal re-derives the frozen amountTotal from the mortgage's
// current parameters and the property's current price. This is the only path
// that rewrites the total after creation.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) RecomputeTotal(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if mortgage.Terminal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrMortgageTerminal)
	}

	price, err := s.propertySvc.GetPropertyPrice(ctx, mortgage.PropertyID)
	if err != nil {
		return nil, err
	}
	principal := price.Sub(mortgage.InitialDeposit)
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	result, err := finance.Compute(principal, mortgage.InterestRate, mortgage.DurationDays, mortgage.Frequency, mortgage.InterestType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	if err := s.mortgageRepo.UpdateAmountTotal(ctx, mortgageID, result.AmountTotal, actor.UserID, now); err != nil {
		logger.Error("Failed to recompute mortgage total", slog.String("mortgage_id", mortgageID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Mortgage total recomputed",
		slog.String("mortgage_id", mortgageID),
		slog.String("old_total", mortgage.AmountTotal.String()),
		slog.String("new_total", result.AmountTotal.String()),
	)

	mortgage.AmountTotal = result.AmountTotal
	mortgage.LastUpdatedAt = now
	mortgage.LastUpdatedBy = actor.UserID
	return mortgage, nil
}

// MarkDefaulted performs the administrative active -> defaulted transition.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) MarkDefaulted(ctx context.Context, mortgageID string, actor domain.Actor) (*domain.Mortgage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	mortgage, err := s.mortgageRepo.FindMortgageByID(ctx, mortgageID)
	if err != nil {
		return nil, err
	}
	if mortgage.Status != domain.MortgageActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotDefaultable)
	}

	now := time.Now().UTC()
	if err := s.mortgageRepo.UpdateMortgageStatus(ctx, mortgageID, domain.MortgageDefaulted, actor.UserID, now); err != nil {
		logger.Error("Failed to mark mortgage defaulted", slog.String("mortgage_id", mortgageID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Mortgage marked defaulted", slog.String("mortgage_id", mortgageID), slog.String("actor_id", actor.UserID))

	mortgage.Status = domain.MortgageDefaulted
	mortgage.LastUpdatedAt = now
	mortgage.LastUpdatedBy = actor.UserID
	return mortgage, nil
}

// DeleteMortgage removes a mortgage and cascades away its payment history.
// Implements portssvc.MortgageSvcFacade
func (s *mortgageService) DeleteMortgage(ctx context.Context, mortgageID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return apperrors.ErrForbidden
	}

	if err := s.mortgageRepo.DeleteMortgage(ctx, mortgageID); err != nil {
		return err
	}
	logger.Info("Mortgage deleted", slog.String("mortgage_id", mortgageID), slog.String("actor_id", actor.UserID))
	return nil
}
