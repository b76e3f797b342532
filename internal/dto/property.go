package dto

import (
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePropertyRequest lists a new property.
type CreatePropertyRequest struct {
	Title       string          `json:"title" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
}

// UpdatePropertyRequest edits a listed property.
type UpdatePropertyRequest struct {
	Title       *string          `json:"title,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty" binding:"omitempty,oneof=LISTED SOLD MORTGAGED"`
}

// PropertyResponse defines the data returned for a property.
type PropertyResponse struct {
	PropertyID  string          `json:"propertyID"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	OwnerUserID *string         `json:"ownerUserID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListPropertiesResponse wraps a page of properties.
type ListPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// ToPropertyResponse converts a domain.Property to its response DTO.
func ToPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID:  p.PropertyID,
		Title:       p.Title,
		Address:     p.Address,
		Price:       p.Price,
		Description: p.Description,
		Status:      string(p.Status),
		OwnerUserID: p.OwnerUserID,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPropertyResponses converts a slice of domain.Property to response DTOs.
func ToPropertyResponses(ps []domain.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(ps))
	for i := range ps {
		responses[i] = ToPropertyResponse(&ps[i])
	}
	return responses
}
