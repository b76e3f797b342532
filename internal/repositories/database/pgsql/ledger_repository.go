package pgsql

import (
	"context"
	"database/sql"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	"github.com/hestiabank/property_portal_app/internal/models"
	"github.com/hestiabank/property_portal_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the financial ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveLedgerEntry appends one entry to the ledger. Entries are never updated
// or deleted; mortgage payment entries are written inside the booking
// transaction by the mortgage repository instead of through this method.
func (r *PgxLedgerRepository) SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, kind, amount, description, user_id, reference_id, entry_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
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
		return apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}
	return nil
}

// ListLedgerEntriesByUser retrieves a paginated list of a user's ledger
// entries, newest first.
func (r *PgxLedgerRepository) ListLedgerEntriesByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, kind, amount, description, user_id, reference_id, entry_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for user "+userID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		var reference sql.NullString
		err := rows.Scan(
			&e.EntryID,
			&e.Kind,
			&e.Amount,
			&e.Description,
			&e.UserID,
			&reference,
			&e.EntryDate,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row for user "+userID, err)
		}
		if reference.Valid {
			e.ReferenceID = &reference.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows for user "+userID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}
