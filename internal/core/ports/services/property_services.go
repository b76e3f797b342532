package services

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/dto"
	"github.com/shopspring/decimal"
)

// PropertySvcFacade manages the property listings the mortgage ledger
// references. The ledger itself only calls GetPropertyPrice.
type PropertySvcFacade interface {
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, actor domain.Actor) (*domain.Property, error)
	GetPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error)

	// GetPropertyPrice resolves the listed price for mortgage creation.
	GetPropertyPrice(ctx context.Context, propertyID string) (decimal.Decimal, error)

	ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, actor domain.Actor) (*domain.Property, error)
	DeleteProperty(ctx context.Context, propertyID string, actor domain.Actor) error
}
