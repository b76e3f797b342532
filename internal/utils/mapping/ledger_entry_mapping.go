package mapping

import (
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Description: d.Description,
		UserID:      d.UserID,
		ReferenceID: d.ReferenceID,
		EntryDate:   d.EntryDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		Kind:        domain.LedgerEntryKind(m.Kind),
		Amount:      m.Amount,
		Description: m.Description,
		UserID:      m.UserID,
		ReferenceID: m.ReferenceID,
		EntryDate:   m.EntryDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
