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
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/hestiabank/property_portal_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// propertyService manages the portal's property listings.
type propertyService struct {
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(propertyRepo portsrepo.PropertyRepositoryFacade) portssvc.PropertySvcFacade {
	return &propertyService{
		propertyRepo: propertyRepo,
	}
}

// Ensure propertyService implements the portssvc.PropertySvcFacade interface
var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

// CreateProperty lists a new property.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, actor domain.Actor) (*domain.Property, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.NewValidationError("property price must be positive")
	}

	now := time.Now().UTC()
	property := domain.Property{
		PropertyID:  uuid.NewString(),
		Title:       req.Title,
		Address:     req.Address,
		Price:       req.Price,
		Description: req.Description,
		Status:      domain.PropertyListed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.propertyRepo.SaveProperty(ctx, property); err != nil {
		logger.Error("Failed to save property", slog.String("property_id", property.PropertyID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Property listed", slog.String("property_id", property.PropertyID), slog.String("price", property.Price.String()))
	return &property, nil
}

// GetPropertyByID retrieves one property listing.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) GetPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	return s.propertyRepo.FindPropertyByID(ctx, propertyID)
}

// GetPropertyPrice resolves the listed price for mortgage creation.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) GetPropertyPrice(ctx context.Context, propertyID string) (decimal.Decimal, error) {
	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return decimal.Zero, err
	}
	return property.Price, nil
}

// ListProperties retrieves a page of property listings.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.propertyRepo.ListProperties(ctx, limit, offset)
}

// UpdateProperty edits a listed property.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, actor domain.Actor) (*domain.Property, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperrors.NewValidationError("property price must be positive")
		}
		property.Price = *req.Price
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Status != nil {
		property.Status = domain.PropertyStatus(*req.Status)
	}

	property.LastUpdatedAt = time.Now().UTC()
	property.LastUpdatedBy = actor.UserID

	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		logger.Error("Failed to update property", slog.String("property_id", propertyID), slog.String("error", err.Error()))
		return nil, err
	}
	return property, nil
}

// DeleteProperty removes a property listing.
// Implements portssvc.PropertySvcFacade
func (s *propertyService) DeleteProperty(ctx context.Context, propertyID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Role.AtLeast(domain.RoleAdmin) {
		return apperrors.ErrForbidden
	}
	if err := s.propertyRepo.DeleteProperty(ctx, propertyID); err != nil {
		return err
	}
	logger.Info("Property deleted", slog.String("property_id", propertyID), slog.String("actor_id", actor.UserID))
	return nil
}
