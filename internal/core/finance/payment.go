package finance

import (
	"fmt"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
)

// ApplyPayment folds one booked payment into a mortgage snapshot: the running
// total increases, the last-payment date moves, and either the mortgage
// completes (amountPaid >= amountTotal, due-date cursor left untouched) or the
// due-date cursor advances by exactly one cadence increment.
//
// The caller must hold the mortgage row exclusively for the duration of the
// update and must have rejected payments against terminal mortgages already;
// this function only encodes the transition itself.
func ApplyPayment(m *domain.Mortgage, p domain.Payment) error {
	if m.Terminal() {
		return fmt.Errorf("mortgage %s is %s and accepts no further payments", m.MortgageID, m.Status)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("payment amount must be positive, got %s", p.Amount)
	}

	m.AmountPaid = m.AmountPaid.Add(p.Amount)
	paidOn := p.PaymentDate
	m.LastPaymentDate = &paidOn

	if m.AmountPaid.GreaterThanOrEqual(m.AmountTotal) {
		// No further payments expected; nextPaymentDue stays where it is.
		m.Status = domain.MortgageCompleted
		return nil
	}

	next, err := NextDueDate(m.NextPaymentDue, m.Frequency)
	if err != nil {
		return err
	}
	m.NextPaymentDue = next
	return nil
}
