package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	"github.com/hestiabank/property_portal_app/internal/models"
	"github.com/hestiabank/property_portal_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxMortgageRepository struct {
	BaseRepository
}

// newPgxMortgageRepository creates a new repository for mortgage and payment data.
func newPgxMortgageRepository(pool *pgxpool.Pool) portsrepo.MortgageRepositoryFacade {
	return &PgxMortgageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMortgageRepository implements portsrepo.MortgageRepositoryFacade
var _ portsrepo.MortgageRepositoryFacade = (*PgxMortgageRepository)(nil)

const mortgageColumns = `
	mortgage_id, property_id, user_id, initial_deposit, interest_rate,
	interest_type, payment_frequency, duration_days, amount_total, amount_paid,
	start_date, next_payment_due, last_payment_date, status, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

// scanMortgageRow scans one mortgages row into a model. Works for both
// pgx.Row and pgx.Rows since both satisfy the scanner shape.
func scanMortgageRow(row pgx.Row) (models.Mortgage, error) {
	var m models.Mortgage
	var lastPayment sql.NullTime

	err := row.Scan(
		&m.MortgageID,
		&m.PropertyID,
		&m.UserID,
		&m.InitialDeposit,
		&m.InterestRate,
		&m.InterestType,
		&m.Frequency,
		&m.DurationDays,
		&m.AmountTotal,
		&m.AmountPaid,
		&m.StartDate,
		&m.NextPaymentDue,
		&lastPayment,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Mortgage{}, err
	}
	if lastPayment.Valid {
		t := lastPayment.Time
		m.LastPaymentDate = &t
	}
	return m, nil
}

// SaveMortgage persists a newly created mortgage.
func (r *PgxMortgageRepository) SaveMortgage(ctx context.Context, mortgage domain.Mortgage) error {
	modelMortgage := mapping.ToModelMortgage(mortgage)
	query := `
		INSERT INTO mortgages (
			mortgage_id, property_id, user_id, initial_deposit, interest_rate,
			interest_type, payment_frequency, duration_days, amount_total, amount_paid,
			start_date, next_payment_due, last_payment_date, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMortgage.MortgageID,
		modelMortgage.PropertyID,
		modelMortgage.UserID,
		modelMortgage.InitialDeposit,
		modelMortgage.InterestRate,
		modelMortgage.InterestType,
		modelMortgage.Frequency,
		modelMortgage.DurationDays,
		modelMortgage.AmountTotal,
		modelMortgage.AmountPaid,
		modelMortgage.StartDate,
		modelMortgage.NextPaymentDue,
		modelMortgage.LastPaymentDate,
		modelMortgage.Status,
		modelMortgage.Notes,
		modelMortgage.CreatedAt,
		modelMortgage.CreatedBy,
		modelMortgage.LastUpdatedAt,
		modelMortgage.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert mortgage "+modelMortgage.MortgageID, err)
	}
	return nil
}

// FindMortgageByID retrieves a mortgage by its ID.
func (r *PgxMortgageRepository) FindMortgageByID(ctx context.Context, mortgageID string) (*domain.Mortgage, error) {
	query := `SELECT ` + mortgageColumns + ` FROM mortgages WHERE mortgage_id = $1;`

	modelMortgage, err := scanMortgageRow(r.Pool.QueryRow(ctx, query, mortgageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find mortgage by ID "+mortgageID, err)
	}

	domainMortgage := mapping.ToDomainMortgage(modelMortgage)
	return &domainMortgage, nil
}

// ListMortgagesByUser retrieves a paginated list of a borrower's mortgages, newest first.
func (r *PgxMortgageRepository) ListMortgagesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Mortgage, error) {
	query := `
		SELECT ` + mortgageColumns + `
		FROM mortgages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.listMortgages(ctx, query, userID, limit, offset)
}

// ListMortgages retrieves a paginated list of all mortgages, newest first.
func (r *PgxMortgageRepository) ListMortgages(ctx context.Context, limit int, offset int) ([]domain.Mortgage, error) {
	query := `
		SELECT ` + mortgageColumns + `
		FROM mortgages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.listMortgages(ctx, query, limit, offset)
}

func (r *PgxMortgageRepository) listMortgages(ctx context.Context, query string, args ...interface{}) ([]domain.Mortgage, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mortgages", err)
	}
	defer rows.Close()

	mortgages := []models.Mortgage{}
	for rows.Next() {
		m, err := scanMortgageRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mortgage row", err)
		}
		mortgages = append(mortgages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mortgage rows", err)
	}

	domainMortgages := make([]domain.Mortgage, len(mortgages))
	for i, m := range mortgages {
		domainMortgages[i] = mapping.ToDomainMortgage(m)
	}
	return domainMortgages, nil
}

// FindPaymentsByMortgageID retrieves the full payment history for a mortgage, oldest first.
func (r *PgxMortgageRepository) FindPaymentsByMortgageID(ctx context.Context, mortgageID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, mortgage_id, amount, payment_date, payment_method, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM mortgage_payments
		WHERE mortgage_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, mortgageID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for mortgage "+mortgageID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.MortgageID,
			&p.Amount,
			&p.PaymentDate,
			&p.PaymentMethod,
			&p.Notes,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for mortgage "+mortgageID, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for mortgage "+mortgageID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}

// BookPayment appends the payment, folds it into the mortgage row and writes
// the accompanying financial ledger entry, all within one DB transaction. The
// mortgage row is locked FOR UPDATE so concurrent bookings against the same
// mortgage serialize.
func (r *PgxMortgageRepository) BookPayment(ctx context.Context, payment domain.Payment, entry domain.LedgerEntry) (*domain.Mortgage, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	// 1. Lock the mortgage row for the duration of the booking
	lockQuery := `SELECT ` + mortgageColumns + ` FROM mortgages WHERE mortgage_id = $1 FOR UPDATE;`
	modelMortgage, err := scanMortgageRow(tx.QueryRow(ctx, lockQuery, payment.MortgageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock mortgage "+payment.MortgageID, err)
	}
	mortgage := mapping.ToDomainMortgage(modelMortgage)

	// 2. Re-check terminal state under the lock: a concurrent booking may
	// have completed the mortgage after the service's optimistic check.
	if mortgage.Terminal() {
		return nil, apperrors.NewAppError(409, "mortgage "+mortgage.MortgageID+" is "+string(mortgage.Status)+" and accepts no further payments", apperrors.ErrConflict)
	}

	// 3. Fold the payment into the snapshot
	if err := finance.ApplyPayment(&mortgage, payment); err != nil {
		return nil, apperrors.NewAppError(400, "failed to apply payment to mortgage "+mortgage.MortgageID, err)
	}
	mortgage.LastUpdatedAt = payment.CreatedAt
	mortgage.LastUpdatedBy = payment.CreatedBy

	// 4. Insert the payment record
	modelPayment := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO mortgage_payments (
			payment_id, mortgage_id, amount, payment_date, payment_method, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		modelPayment.PaymentID,
		modelPayment.MortgageID,
		modelPayment.Amount,
		modelPayment.PaymentDate,
		modelPayment.PaymentMethod,
		modelPayment.Notes,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}

	// 5. Write the mortgage row back with the folded-in payment
	updateQuery := `
		UPDATE mortgages
		SET amount_paid = $2, last_payment_date = $3, next_payment_due = $4,
		    status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE mortgage_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		mortgage.MortgageID,
		mortgage.AmountPaid,
		mortgage.LastPaymentDate,
		mortgage.NextPaymentDue,
		string(mortgage.Status),
		mortgage.LastUpdatedAt,
		mortgage.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update mortgage "+mortgage.MortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	// 6. Write the payment through to the portal-wide financial ledger
	modelEntry := mapping.ToModelLedgerEntry(entry)
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, kind, amount, description, user_id, reference_id, entry_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.Kind,
		modelEntry.Amount,
		modelEntry.Description,
		modelEntry.UserID,
		modelEntry.ReferenceID,
		modelEntry.EntryDate,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry for payment "+modelPayment.PaymentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &mortgage, nil
}

// UpdateMortgageDetails updates the editable loan parameters and notes. It
// deliberately leaves amount_total, amount_paid and the due-date cursor alone.
func (r *PgxMortgageRepository) UpdateMortgageDetails(ctx context.Context, mortgage domain.Mortgage) error {
	modelMortgage := mapping.ToModelMortgage(mortgage)
	query := `
		UPDATE mortgages
		SET interest_rate = $2, interest_type = $3, payment_frequency = $4,
		    duration_days = $5, notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE mortgage_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelMortgage.MortgageID,
		modelMortgage.InterestRate,
		modelMortgage.InterestType,
		modelMortgage.Frequency,
		modelMortgage.DurationDays,
		modelMortgage.Notes,
		modelMortgage.LastUpdatedAt,
		modelMortgage.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update mortgage "+modelMortgage.MortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateMortgageStatus performs an administrative status change.
func (r *PgxMortgageRepository) UpdateMortgageStatus(ctx context.Context, mortgageID string, status domain.MortgageStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE mortgages
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE mortgage_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, mortgageID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of mortgage "+mortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAmountTotal rewrites the frozen total. Only the explicit recompute
// operation calls this.
func (r *PgxMortgageRepository) UpdateAmountTotal(ctx context.Context, mortgageID string, amountTotal decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE mortgages
		SET amount_total = $2, last_updated_at = $3, last_updated_by = $4
		WHERE mortgage_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, mortgageID, amountTotal, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update total of mortgage "+mortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMortgage removes a mortgage; the payment history goes with it via the
// ON DELETE CASCADE on mortgage_payments.
func (r *PgxMortgageRepository) DeleteMortgage(ctx context.Context, mortgageID string) error {
	query := `DELETE FROM mortgages WHERE mortgage_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, mortgageID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete mortgage "+mortgageID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
