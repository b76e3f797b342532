package finance_test

import (
	"testing"
	"time"

	"github.com/hestiabank/property_portal_app/internal/core/domain"
	"github.com/hestiabank/property_portal_app/internal/core/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var metricsToday = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func activeMortgage() domain.Mortgage {
	return domain.Mortgage{
		MortgageID:     "m-1",
		InitialDeposit: d("1000"),
		InterestRate:   d("0.05"),
		InterestType:   domain.InterestFixed,
		Frequency:      domain.FrequencyWeekly,
		DurationDays:   365,
		AmountTotal:    d("21000.00"),
		AmountPaid:     d("1000"),
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NextPaymentDue: metricsToday.AddDate(0, 0, 7),
		Status:         domain.MortgageActive,
	}
}

func TestComputeMetricsRemainingBalance(t *testing.T) {
	m := activeMortgage()
	got := finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.RemainingBalance.Equal(d("20000.00")), "remaining = %s", got.RemainingBalance)

	// Overpayment floors the displayed balance at zero.
	m.AmountPaid = d("21500")
	got = finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.RemainingBalance.IsZero())
}

// The displayed installment is recomputed against the remaining balance, not
// the original schedule, so it shrinks as payments come in.
func TestComputeMetricsInstallmentDrift(t *testing.T) {
	m := activeMortgage()
	before := finance.ComputeMetrics(m, metricsToday)

	m.AmountPaid = d("6000")
	after := finance.ComputeMetrics(m, metricsToday)

	assert.True(t, after.CurrentInstallment.LessThan(before.CurrentInstallment))

	// And it matches a fresh computation over the remaining balance.
	res, err := finance.Compute(after.RemainingBalance, m.InterestRate, m.DurationDays, m.Frequency, m.InterestType)
	require.NoError(t, err)
	assert.True(t, after.CurrentInstallment.Equal(res.AmountPerInstallment))
}

func TestComputeMetricsProgressPercentage(t *testing.T) {
	m := activeMortgage()
	m.AmountPaid = d("10500")
	got := finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.ProgressPercentage.Equal(d("50")), "progress = %s", got.ProgressPercentage)

	// Clamped at 100 for overpayment.
	m.AmountPaid = d("25000")
	got = finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.ProgressPercentage.Equal(d("100")))

	// A zero-total mortgage reads as fully paid.
	m.AmountTotal = decimal.Zero
	m.AmountPaid = decimal.Zero
	got = finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.ProgressPercentage.Equal(d("100")))
}

func TestComputeMetricsOverdueBoundary(t *testing.T) {
	m := activeMortgage()

	// Due today (regardless of time of day): not overdue yet.
	m.NextPaymentDue = time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	got := finance.ComputeMetrics(m, metricsToday)
	assert.False(t, got.IsOverdue)
	assert.Equal(t, 0, got.DaysOverdue)

	// Due yesterday: overdue by exactly one day.
	m.NextPaymentDue = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	got = finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.IsOverdue)
	assert.Equal(t, 1, got.DaysOverdue)

	// A week late.
	m.NextPaymentDue = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	got = finance.ComputeMetrics(m, metricsToday)
	assert.True(t, got.IsOverdue)
	assert.Equal(t, 7, got.DaysOverdue)
}

func TestComputeMetricsOverdueRequiresActiveStatus(t *testing.T) {
	m := activeMortgage()
	m.NextPaymentDue = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []domain.MortgageStatus{domain.MortgageCompleted, domain.MortgageDefaulted} {
		m.Status = status
		got := finance.ComputeMetrics(m, metricsToday)
		assert.False(t, got.IsOverdue, "status %s must never read as overdue", status)
		assert.Equal(t, 0, got.DaysOverdue)
	}
}

func TestComputeMetricsScheduledInstallments(t *testing.T) {
	m := activeMortgage()
	m.Frequency = domain.FrequencyDaily
	got := finance.ComputeMetrics(m, metricsToday)
	assert.Equal(t, 365, got.TotalScheduledInstallments)

	m.Frequency = domain.FrequencyWeekly
	got = finance.ComputeMetrics(m, metricsToday)
	assert.Equal(t, 53, got.TotalScheduledInstallments)
}

func TestComputeMetricsPaymentsMade(t *testing.T) {
	m := activeMortgage()
	got := finance.ComputeMetrics(m, metricsToday)
	// Only the deposit has been paid so far.
	assert.Equal(t, 0, got.PaymentsMade)

	m.AmountPaid = d("3000")
	got = finance.ComputeMetrics(m, metricsToday)
	// 2000 beyond the deposit at the drifted installment size.
	expected := d("2000").Div(got.CurrentInstallment).Floor().IntPart()
	assert.Equal(t, int(expected), got.PaymentsMade)

	// A fully paid mortgage has a zero installment; the estimate degrades to 0
	// rather than dividing by zero.
	m.AmountPaid = m.AmountTotal
	got = finance.ComputeMetrics(m, metricsToday)
	assert.Equal(t, 0, got.PaymentsMade)
}
