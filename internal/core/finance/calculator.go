// Package finance holds the pure mortgage math: the amortization calculator
// that freezes a loan's total at signing, and the derived metrics computed on
// every read. Nothing in this package performs I/O or touches storage.
package finance

import (
	"fmt"
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	daysInYear = decimal.NewFromInt(365)
)

// Result is the outcome of a mortgage computation.
type Result struct {
	// AmountTotal is the full amount owed over the life of the loan, rounded
	// to 2 decimal places. This is the value the ledger freezes at creation.
	AmountTotal decimal.Decimal
	// AmountPerInstallment is the nominal per-installment figure, rounded to
	// 2 decimal places. For compound interest it is an average; real
	// per-period payments decline as the outstanding balance shrinks.
	AmountPerInstallment decimal.Decimal
	// TotalInstallments is the number of scheduled installments.
	TotalInstallments int
}

// periodsPerDay maps a payment cadence to the number of installments due per day.
func periodsPerDay(freq domain.PaymentFrequency) (decimal.Decimal, error) {
	switch freq {
	case domain.FrequencyDaily:
		return decimal.NewFromInt(1), nil
	case domain.FrequencyBiDaily:
		return decimal.NewFromFloat(0.5), nil
	case domain.FrequencyWeekly:
		return one.Div(decimal.NewFromInt(7)), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown payment frequency %q", freq)
	}
}

// InstallmentsPerYear returns how many installments a cadence schedules per
// 365-day year. Used only for the informational "N of M payments" display.
func InstallmentsPerYear(freq domain.PaymentFrequency) (decimal.Decimal, error) {
	perDay, err := periodsPerDay(freq)
	if err != nil {
		return decimal.Zero, err
	}
	return daysInYear.Mul(perDay), nil
}

// TotalInstallments derives the installment count for a loan term. The count
// is the term length scaled by the cadence, rounded to the nearest whole
// installment (a 365-day weekly loan has 52 installments, not 53), never
// below one.
func TotalInstallments(durationDays int, freq domain.PaymentFrequency) (int, error) {
	if durationDays < 1 {
		return 0, fmt.Errorf("duration must be at least one day, got %d", durationDays)
	}
	perDay, err := periodsPerDay(freq)
	if err != nil {
		return 0, err
	}
	n := decimal.NewFromInt(int64(durationDays)).Mul(perDay).Round(0).IntPart()
	if n < 1 {
		n = 1
	}
	return int(n), nil
}

// CadenceIncrement returns the due-date step for one cadence period.
func CadenceIncrement(freq domain.PaymentFrequency) (int, error) {
	switch freq {
	case domain.FrequencyDaily:
		return 1, nil
	case domain.FrequencyBiDaily:
		return 2, nil
	case domain.FrequencyWeekly:
		return 7, nil
	default:
		return 0, fmt.Errorf("unknown payment frequency %q", freq)
	}
}

// NextDueDate advances a due date by one cadence increment.
func NextDueDate(from time.Time, freq domain.PaymentFrequency) (time.Time, error) {
	days, err := CadenceIncrement(freq)
	if err != nil {
		return time.Time{}, err
	}
	return from.AddDate(0, 0, days), nil
}

// Compute derives the total amount owed and the nominal per-installment
// payment for a loan. principal is the financed amount (property price minus
// deposit) and may be zero, in which case all computed amounts are zero.
// annualRate is a decimal fraction (0.05 = 5%).
//
// Compute is a pure function: identical arguments always yield identical
// results, and out-of-range inputs are the caller's responsibility to reject
// before money is committed.
func Compute(principal, annualRate decimal.Decimal, durationDays int, freq domain.PaymentFrequency, itype domain.InterestType) (Result, error) {
	if principal.IsNegative() {
		return Result{}, fmt.Errorf("principal must not be negative, got %s", principal)
	}
	if annualRate.IsNegative() {
		return Result{}, fmt.Errorf("interest rate must not be negative, got %s", annualRate)
	}

	installments, err := TotalInstallments(durationDays, freq)
	if err != nil {
		return Result{}, err
	}

	if principal.IsZero() {
		return Result{
			AmountTotal:          decimal.Zero,
			AmountPerInstallment: decimal.Zero,
			TotalInstallments:    installments,
		}, nil
	}

	n := decimal.NewFromInt(int64(installments))

	var total decimal.Decimal
	switch itype {
	case domain.InterestFixed:
		// Simple interest: the borrower's total obligation is set at signing
		// and does not depend on how many installments it is split into.
		total = principal.Mul(one.Add(annualRate))
	case domain.InterestCompound:
		// Declining-balance simulation: equal principal slices, interest
		// charged each period on the outstanding balance at the flat
		// per-period rate. Rounding happens once, on the final total.
		balance := principal
		slice := principal.Div(n)
		totalPaid := decimal.Zero
		for i := 0; i < installments; i++ {
			interest := balance.Mul(annualRate)
			totalPaid = totalPaid.Add(interest).Add(slice)
			balance = balance.Sub(slice)
		}
		total = totalPaid
	default:
		return Result{}, fmt.Errorf("unknown interest type %q", itype)
	}

	return Result{
		AmountTotal:          total.Round(2),
		AmountPerInstallment: total.Div(n).Round(2),
		TotalInstallments:    installments,
	}, nil
}

// AnnuityInstallment is the closed-form amortizing-loan payment
// P*r*(1+r)^n / ((1+r)^n - 1) with the annual rate rescaled to the cadence.
// It intentionally disagrees with Compute for nonzero rates: the ledger
// freezes totals from the declining-balance model, and this formula exists
// only for display surfaces that want the textbook annuity figure. Do not use
// it to derive stored amounts.
func AnnuityInstallment(principal, annualRate decimal.Decimal, durationDays int, freq domain.PaymentFrequency) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("principal must not be negative, got %s", principal)
	}
	installments, err := TotalInstallments(durationDays, freq)
	if err != nil {
		return decimal.Zero, err
	}
	n := decimal.NewFromInt(int64(installments))
	if principal.IsZero() {
		return decimal.Zero, nil
	}
	if annualRate.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	perYear, err := InstallmentsPerYear(freq)
	if err != nil {
		return decimal.Zero, err
	}
	periodicRate := annualRate.Div(perYear)
	power := one.Add(periodicRate).Pow(n)
	payment := principal.Mul(periodicRate).Mul(power).Div(power.Sub(one))
	return payment.Round(2), nil
}
