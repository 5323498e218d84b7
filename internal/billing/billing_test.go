package billing

import (
	"testing"
	"time"

	"rentdesk/internal/domain"

	"github.com/stretchr/testify/assert"
)

func ts(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestDaysRented(t *testing.T) {
	now := ts(2024, time.June, 15, 12)

	t.Run("Same instant bills one day", func(t *testing.T) {
		out := ts(2024, time.January, 1, 0)
		assert.Equal(t, 1, DaysRented(out, ptr(out), now))
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		out := ts(2024, time.January, 1, 0)
		in := ts(2024, time.January, 1, 6)
		assert.Equal(t, 1, DaysRented(out, ptr(in), now))
	})

	t.Run("Exactly 48 hours is two days", func(t *testing.T) {
		out := ts(2024, time.January, 1, 0)
		in := ts(2024, time.January, 3, 0)
		assert.Equal(t, 2, DaysRented(out, ptr(in), now))
	})

	t.Run("48 hours plus one hour rounds to three", func(t *testing.T) {
		out := ts(2024, time.January, 1, 0)
		in := ts(2024, time.January, 3, 1)
		assert.Equal(t, 3, DaysRented(out, ptr(in), now))
	})

	t.Run("Open rental measures against now", func(t *testing.T) {
		out := ts(2024, time.June, 13, 12)
		assert.Equal(t, 2, DaysRented(out, nil, now))
	})
}

func TestMonthsRented(t *testing.T) {
	now := ts(2024, time.June, 15, 0)

	tests := []struct {
		name     string
		out      time.Time
		in       *time.Time
		expected int
	}{
		{"Same month is one month", ts(2024, time.January, 2, 0), ptr(ts(2024, time.January, 30, 0)), 1},
		{"Adjacent days across month boundary bill two", ts(2024, time.January, 31, 0), ptr(ts(2024, time.February, 1, 0)), 2},
		{"Day of month ignored", ts(2024, time.January, 1, 0), ptr(ts(2024, time.March, 1, 0)), 3},
		{"Year rollover", ts(2023, time.November, 10, 0), ptr(ts(2024, time.February, 5, 0)), 4},
		{"Open rental measures against now", ts(2024, time.April, 28, 0), nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsRented(tt.out, tt.in, now))
		})
	}
}

func TestTotalBilled(t *testing.T) {
	t.Run("Daily rental open for two days", func(t *testing.T) {
		// rate 50/day, out 2024-01-01, still out, now 2024-01-03 -> 2 days, 100
		r := &domain.Rental{
			OutDate:      ts(2024, time.January, 1, 0),
			Rate:         50,
			BillingCycle: domain.BillingCycleDay,
		}
		now := ts(2024, time.January, 3, 0)
		assert.Equal(t, 2, DaysRented(r.OutDate, r.InDate, now))
		assert.Equal(t, 100.0, TotalBilled(r, now))
	})

	t.Run("Monthly rental across a month boundary", func(t *testing.T) {
		// rate 150/month, out Jan 31, in Feb 1 -> 2 months, 300
		r := &domain.Rental{
			OutDate:      ts(2024, time.January, 31, 0),
			InDate:       ptr(ts(2024, time.February, 1, 0)),
			Rate:         150,
			BillingCycle: domain.BillingCycleMonth,
		}
		assert.Equal(t, 300.0, TotalBilled(r, time.Now()))
	})
}

func TestBalance(t *testing.T) {
	now := ts(2024, time.January, 3, 0)
	r := &domain.Rental{
		OutDate:      ts(2024, time.January, 1, 0),
		Rate:         50,
		BillingCycle: domain.BillingCycleDay,
	}

	t.Run("Empty ledger sums to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalPaid(r))
		assert.Equal(t, 100.0, Balance(r, now))
	})

	t.Run("Each payment decreases balance by its amount", func(t *testing.T) {
		r.Payments = append(r.Payments, domain.Payment{ID: "PAY-1", Amount: 40, Mode: domain.PaymentModeCash})
		assert.Equal(t, 60.0, Balance(r, now))

		r.Payments = append(r.Payments, domain.Payment{ID: "PAY-2", Amount: 70, Mode: domain.PaymentModeCreditCard})
		assert.Equal(t, -10.0, Balance(r, now), "overpayment goes negative, not clamped")
	})
}
