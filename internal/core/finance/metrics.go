package finance

import (
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MortgageMetrics is the read-only derived view of a mortgage snapshot.
// Nothing here is persisted; every field is recomputed on each call.
type MortgageMetrics struct {
	// RemainingBalance is amountTotal - amountPaid, floored at zero.
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	// CurrentInstallment is the per-installment amount recomputed against the
	// remaining balance rather than the original schedule, so the displayed
	// figure drifts as payments are made. Distinct from the frozen total.
	CurrentInstallment decimal.Decimal `json:"amountPerInstallment"`
	// ProgressPercentage is amountPaid/amountTotal*100 clamped to [0,100].
	// Not rounded here; rounding is a presentation concern.
	ProgressPercentage decimal.Decimal `json:"progressPercentage"`
	IsOverdue          bool            `json:"isOverdue"`
	// DaysOverdue is whole days past the due date, zero unless IsOverdue.
	DaysOverdue int `json:"daysOverdue"`
	// TotalScheduledInstallments is the informational "M" in "N of M payments made".
	TotalScheduledInstallments int `json:"totalScheduledInstallments"`
	// PaymentsMade estimates "N" as floor((amountPaid-initialDeposit)/currentInstallment).
	PaymentsMade int `json:"paymentsMade"`
}

// dateOnly truncates a timestamp to midnight UTC. Overdue comparisons ignore
// the time of day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeMetrics derives the display metrics for a mortgage snapshot as of
// the given day. Pure: it never mutates the mortgage and never persists.
func ComputeMetrics(m domain.Mortgage, today time.Time) MortgageMetrics {
	remaining := m.AmountTotal.Sub(m.AmountPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	var installment decimal.Decimal
	if res, err := Compute(remaining, m.InterestRate, m.DurationDays, m.Frequency, m.InterestType); err == nil {
		installment = res.AmountPerInstallment
	}

	progress := hundred
	if m.AmountTotal.IsPositive() {
		progress = m.AmountPaid.Div(m.AmountTotal).Mul(hundred)
		if progress.GreaterThan(hundred) {
			progress = hundred
		} else if progress.IsNegative() {
			progress = decimal.Zero
		}
	}

	todayDate := dateOnly(today)
	dueDate := dateOnly(m.NextPaymentDue)
	overdue := m.Status == domain.MortgageActive && dueDate.Before(todayDate)
	daysOverdue := 0
	if overdue {
		daysOverdue = int(todayDate.Sub(dueDate).Hours() / 24)
	}

	return MortgageMetrics{
		RemainingBalance:           remaining,
		CurrentInstallment:         installment,
		ProgressPercentage:         progress,
		IsOverdue:                  overdue,
		DaysOverdue:                daysOverdue,
		TotalScheduledInstallments: totalScheduledInstallments(m.DurationDays, m.Frequency),
		PaymentsMade:               paymentsMade(m.AmountPaid, m.InitialDeposit, installment),
	}
}

// totalScheduledInstallments is ceil(durationDays/365 * installmentsPerYear).
func totalScheduledInstallments(durationDays int, freq domain.PaymentFrequency) int {
	perYear, err := InstallmentsPerYear(freq)
	if err != nil {
		return 0
	}
	years := decimal.NewFromInt(int64(durationDays)).Div(daysInYear)
	return int(years.Mul(perYear).Ceil().IntPart())
}

// paymentsMade estimates how many installments the amount paid beyond the
// initial deposit covers at the current installment size.
func paymentsMade(amountPaid, initialDeposit, installment decimal.Decimal) int {
	if !installment.IsPositive() {
		return 0
	}
	paid := amountPaid.Sub(initialDeposit)
	if !paid.IsPositive() {
		return 0
	}
	return int(paid.Div(installment).Floor().IntPart())
}
