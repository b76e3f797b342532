package pgsql

import (
	"context"
	"errors"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	"github.com/hestiabank/property_portal_app/internal/models"
	"github.com/hestiabank/property_portal_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUserRow(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID,
		&u.Username,
		&u.DisplayName,
		&u.Role,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
	)
	return u, err
}

// SaveUser persists a newly registered user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (
			user_id, username, display_name, role, password_hash,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Username,
		modelUser.DisplayName,
		modelUser.Role,
		modelUser.PasswordHash,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation; the username column carries a unique index
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "username "+modelUser.Username+" is already taken", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert user "+modelUser.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, display_name, role, password_hash,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = $1;
	`
	modelUser, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by ID "+userID, err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

// FindUserByUsername retrieves a user by their unique username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT user_id, username, display_name, role, password_hash,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE username = $1;
	`
	modelUser, err := scanUserRow(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by username", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

// ListUsers retrieves a paginated list of users.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `
		SELECT user_id, username, display_name, role, password_hash,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, mapping.ToDomainUser(u))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return users, nil
}

// UpdateUser writes back the editable user fields.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET display_name = $2, role = $3, password_hash = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.DisplayName,
		modelUser.Role,
		modelUser.PasswordHash,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update user "+modelUser.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user account.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete user "+userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
