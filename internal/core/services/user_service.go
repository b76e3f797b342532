package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hestiabank/property_portal_app/internal/apperrors"
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	portsrepo "github.com/hestiabank/property_portal_app/internal/core/ports/repositories"
	portssvc "github.com/hestiabank/property_portal_app/internal/core/ports/services"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/hestiabank/property_portal_app/internal/utils"
)

// ErrInvalidCredentials is returned by Authenticate for a bad username or
// password. Deliberately indistinguishable between the two cases.
var ErrInvalidCredentials = errors.New("invalid username or password")

// userService manages portal accounts.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new portal account. Self-registration always yields
// the base role; only admins may assign elevated roles.
// Implements portssvc.UserSvcFacade
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.RoleUser
	if req.Role != "" && req.Role != string(domain.RoleUser) {
		if !actor.Role.AtLeast(domain.RoleAdmin) {
			return nil, apperrors.ErrForbidden
		}
		role = domain.UserRole(req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	createdBy := actor.UserID
	if createdBy == "" {
		// Self-registration: the account is its own creator.
		createdBy = userID
	}

	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Role:         role,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Warn("Failed to save user", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves one user.
// Implements portssvc.UserSvcFacade
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a page of users.
// Implements portssvc.UserSvcFacade
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser edits a portal account. Users may edit their own display name;
// role changes are admin-only.
// Implements portssvc.UserSvcFacade
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.UserID != userID && !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}
	if req.Role != nil && !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a portal account.
// Implements portssvc.UserSvcFacade
func (s *userService) DeleteUser(ctx context.Context, userID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return apperrors.ErrForbidden
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	logger.Info("User deleted", slog.String("user_id", userID), slog.String("actor_id", actor.UserID))
	return nil
}

// Authenticate verifies credentials and returns the matching user.
// Implements portssvc.UserSvcFacade
func (s *userService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
