package repositories

import (
	"context"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// PropertyReader defines read operations for property data.
type PropertyReader interface {
	FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error)
	ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error)
}

// PropertyWriter defines write operations for property data.
type PropertyWriter interface {
	SaveProperty(ctx context.Context, property domain.Property) error
	UpdateProperty(ctx context.Context, property domain.Property) error
	DeleteProperty(ctx context.Context, propertyID string) error
}

// PropertyRepositoryFacade combines all property-related repository interfaces.
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
}
