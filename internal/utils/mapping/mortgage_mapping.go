package mapping

import (
	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/models"
)

// ToModelMortgage converts a domain Mortgage to a model Mortgage.
func ToModelMortgage(d domain.Mortgage) models.Mortgage {
	return models.Mortgage{
		MortgageID:      d.MortgageID,
		PropertyID:      d.PropertyID,
		UserID:          d.UserID,
		InitialDeposit:  d.InitialDeposit,
		InterestRate:    d.InterestRate,
		InterestType:    string(d.InterestType),
		Frequency:       string(d.Frequency),
		DurationDays:    d.DurationDays,
		AmountTotal:     d.AmountTotal,
		AmountPaid:      d.AmountPaid,
		StartDate:       d.StartDate,
		NextPaymentDue:  d.NextPaymentDue,
		LastPaymentDate: d.LastPaymentDate,
		Status:          models.MortgageStatus(d.Status),
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMortgage converts a model Mortgage to a domain Mortgage.
func ToDomainMortgage(m models.Mortgage) domain.Mortgage {
	return domain.Mortgage{
		MortgageID:      m.MortgageID,
		PropertyID:      m.PropertyID,
		UserID:          m.UserID,
		InitialDeposit:  m.InitialDeposit,
		InterestRate:    m.InterestRate,
		InterestType:    domain.InterestType(m.InterestType),
		Frequency:       domain.PaymentFrequency(m.Frequency),
		DurationDays:    m.DurationDays,
		AmountTotal:     m.AmountTotal,
		AmountPaid:      m.AmountPaid,
		StartDate:       m.StartDate,
		NextPaymentDue:  m.NextPaymentDue,
		LastPaymentDate: m.LastPaymentDate,
		Status:          domain.MortgageStatus(m.Status),
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		MortgageID:    d.MortgageID,
		Amount:        d.Amount,
		PaymentDate:   d.PaymentDate,
		PaymentMethod: d.PaymentMethod,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		MortgageID:    m.MortgageID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
