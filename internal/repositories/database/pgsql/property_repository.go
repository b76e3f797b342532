package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	"github.com/hestiabank/property_portal_app/internal/models"
	"github.com/hestiabank/property_portal_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPropertyRepository struct {
	BaseRepository
}

// newPgxPropertyRepository creates a new repository for property data.
func newPgxPropertyRepository(pool *pgxpool.Pool) portsrepo.PropertyRepositoryFacade {
	return &PgxPropertyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPropertyRepository implements portsrepo.PropertyRepositoryFacade
var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

func scanPropertyRow(row pgx.Row) (models.Property, error) {
	var p models.Property
	var owner sql.NullString

	err := row.Scan(
		&p.PropertyID,
		&p.Title,
		&p.Address,
		&p.Price,
		&p.Description,
		&p.Status,
		&owner,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return models.Property{}, err
	}
	if owner.Valid {
		p.OwnerUserID = &owner.String
	}
	return p, nil
}

// SaveProperty persists a newly listed property.
func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	modelProperty := mapping.ToModelProperty(property)
	query := `
		INSERT INTO properties (
			property_id, title, address, price, description, status, owner_user_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelProperty.PropertyID,
		modelProperty.Title,
		modelProperty.Address,
		modelProperty.Price,
		modelProperty.Description,
		modelProperty.Status,
		modelProperty.OwnerUserID,
		modelProperty.CreatedAt,
		modelProperty.CreatedBy,
		modelProperty.LastUpdatedAt,
		modelProperty.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert property "+modelProperty.PropertyID, err)
	}
	return nil
}

// FindPropertyByID retrieves a property by its ID.
func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	query := `
		SELECT property_id, title, address, price, description, status, owner_user_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM properties
		WHERE property_id = $1;
	`
	modelProperty, err := scanPropertyRow(r.Pool.QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find property by ID "+propertyID, err)
	}

	domainProperty := mapping.ToDomainProperty(modelProperty)
	return &domainProperty, nil
}

// ListProperties retrieves a paginated list of properties, newest first.
func (r *PgxPropertyRepository) ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error) {
	query := `
		SELECT property_id, title, address, price, description, status, owner_user_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM properties
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query properties", err)
	}
	defer rows.Close()

	properties := []domain.Property{}
	for rows.Next() {
		p, err := scanPropertyRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan property row", err)
		}
		properties = append(properties, mapping.ToDomainProperty(p))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating property rows", err)
	}
	return properties, nil
}

// UpdateProperty writes back the editable property fields.
func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	modelProperty := mapping.ToModelProperty(property)
	query := `
		UPDATE properties
		SET title = $2, address = $3, price = $4, description = $5, status = $6,
		    owner_user_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE property_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelProperty.PropertyID,
		modelProperty.Title,
		modelProperty.Address,
		modelProperty.Price,
		modelProperty.Description,
		modelProperty.Status,
		modelProperty.OwnerUserID,
		modelProperty.LastUpdatedAt,
		modelProperty.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update property "+modelProperty.PropertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProperty removes a property listing.
func (r *PgxPropertyRepository) DeleteProperty(ctx context.Context, propertyID string) error {
	query := `DELETE FROM properties WHERE property_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, propertyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete property "+propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
