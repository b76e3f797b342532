package mapping

import (
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/models"
)

// ToModelProperty converts a domain Property to a model Property.
func ToModelProperty(d domain.Property) models.Property {
	return models.Property{
		PropertyID:  d.PropertyID,
		Title:       d.Title,
		Address:     d.Address,
		Price:       d.Price,
		Description: d.Description,
		Status:      string(d.Status),
		OwnerUserID: d.OwnerUserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProperty converts a model Property to a domain Property.
func ToDomainProperty(m models.Property) domain.Property {
	return domain.Property{
		PropertyID:  m.PropertyID,
		Title:       m.Title,
		Address:     m.Address,
		Price:       m.Price,
		Description: m.Description,
		Status:      domain.PropertyStatus(m.Status),
		OwnerUserID: m.OwnerUserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
