package services

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/dto"
)

// UserSvcFacade manages portal accounts. The mortgage ledger uses it only to
// resolve borrower identities for display enrichment.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, actor domain.Actor) error

	// Authenticate verifies credentials and returns the matching user.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
}
