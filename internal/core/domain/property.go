package domain

import "github.com/shopspring/decimal"

// PropertyStatus indicates whether a property is still on the market.
type PropertyStatus string

const (
	PropertyListed    PropertyStatus = "LISTED"
	PropertySold      PropertyStatus = "SOLD"
	PropertyMortgaged PropertyStatus = "MORTGAGED"
)

// Property is an external collaborator of the mortgage ledger: the ledger only
// reads the price at mortgage creation time. The rest is portal listing glue.
type Property struct {
	PropertyID  string          `json:"propertyID"` // Primary Key (UUID)
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Status      PropertyStatus  `json:"status"`
	OwnerUserID *string         `json:"ownerUserID,omitempty"` // Set once sold or mortgaged
	AuditFields
}
