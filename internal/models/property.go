package models

import "github.com/shopspring/decimal"

// Property is the properties table row.
type Property struct {
	PropertyID  string          `json:"propertyID"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	OwnerUserID *string         `json:"ownerUserID,omitempty"`
	AuditFields
}
