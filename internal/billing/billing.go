// Package billing computes elapsed rental duration and amounts owed.
// All functions are pure; "now" is always passed in explicitly so callers
// and tests control the clock.
package billing

import (
	"math"
	"time"

	"rentdesk/internal/domain"
)

// end resolves the closing bound of a rental interval: the check-in time if
// the rental is closed, otherwise now.
func end(in *time.Time, now time.Time) time.Time {
	if in != nil {
		return *in
	}
	return now
}

// DaysRented returns the billable days between outDate and the rental's end,
// as the ceiling of the absolute wall-clock difference in 24h units. A
// same-instant rental still bills one day. The calculation is intentionally
// clock-based rather than calendar-boundary-based.
func DaysRented(outDate time.Time, inDate *time.Time, now time.Time) int {
	diff := end(inDate, now).Sub(outDate)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days == 0 {
		return 1
	}
	return days
}

// MonthsRented returns the billable months between outDate and the rental's
// end: the calendar-month distance plus one. Day-of-month is ignored
// entirely, so a rental spanning Jan 31 to Feb 1 bills two months. This is
// the contractual formula, not a prorated one.
func MonthsRented(outDate time.Time, inDate *time.Time, now time.Time) int {
	e := end(inDate, now)
	yearDiff := e.Year() - outDate.Year()
	monthDiff := int(e.Month()) - int(outDate.Month())
	return yearDiff*12 + monthDiff + 1
}

// TotalBilled returns the amount owed for a rental at its snapshot rate.
func TotalBilled(r *domain.Rental, now time.Time) float64 {
	if r.BillingCycle == domain.BillingCycleMonth {
		return float64(MonthsRented(r.OutDate, r.InDate, now)) * r.Rate
	}
	return float64(DaysRented(r.OutDate, r.InDate, now)) * r.Rate
}

// TotalPaid sums the rental's payment ledger. An empty ledger sums to zero.
func TotalPaid(r *domain.Rental) float64 {
	var sum float64
	for _, p := range r.Payments {
		sum += p.Amount
	}
	return sum
}

// Balance is billed minus paid. Negative means overpayment; that is
// displayed, not prevented.
func Balance(r *domain.Rental, now time.Time) float64 {
	return TotalBilled(r, now) - TotalPaid(r)
}
