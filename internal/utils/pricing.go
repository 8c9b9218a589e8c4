package utils

import (
	"time"

	"carrental-backend/internal/domain"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	// Tax applies to the base amount only, never to fees.
	taxRateBasisPoints = 1500
)

// InvoiceBreakdown is the priced result of a completed rental.
type InvoiceBreakdown struct {
	RentalDays        int32
	BaseAmountCents   int32
	LateFeeCents      int32
	DamageFeeCents    int32
	OtherChargesCents int32
	TaxAmountCents    int32
	TotalAmountCents  int32
}

// ParseDate converts a yyyy-mm-dd formatted string into a UTC time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, domain.NewValidationError("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// ValidateDateRange parses both dates and rejects non-chronological ranges.
func ValidateDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domain.NewValidationError(
			"start date %s must not be after end date %s", startDate, endDate)
	}
	return start, end, nil
}

// RangesOverlap reports whether two inclusive date ranges share at least one
// calendar day. A booking ending on day D conflicts with one starting on
// day D: no same-day turnaround.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DatesOverlap is RangesOverlap over yyyy-mm-dd strings. An empty bEnd is
// treated as open-ended: the range conflicts with everything from bStart on.
func DatesOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, ae, err := ValidateDateRange(aStart, aEnd)
	if err != nil {
		return false, err
	}
	bs, err := ParseDate(bStart)
	if err != nil {
		return false, err
	}
	if bEnd == "" {
		return !ae.Before(bs), nil
	}
	be, err := ParseDate(bEnd)
	if err != nil {
		return false, err
	}
	return RangesOverlap(as, ae, bs, be), nil
}

// BookingDays returns the number of billable days for a booking quote:
// whole days between start and end. A same-day range quotes zero days; the
// one-day floor applies only at invoice time.
func BookingDays(start, end time.Time) int32 {
	return int32(end.Sub(start) / (24 * time.Hour))
}

// QuoteBookingCents computes the booking total: daily rate times whole days
// in the range. Computed once at creation; never recomputed automatically.
func QuoteBookingCents(dailyRateCents int32, startDate, endDate string) (int32, error) {
	start, end, err := ValidateDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return dailyRateCents * BookingDays(start, end), nil
}

// RentalDays converts actual elapsed wall-clock possession into billable
// days: ceiling of the duration, floored at one day.
func RentalDays(checkout, checkin time.Time) int32 {
	elapsed := checkin.Sub(checkout)
	days := int32(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// TaxCents computes the 15% tax on the base amount, rounded to the nearest
// cent.
func TaxCents(baseAmountCents int32) int32 {
	return int32((int64(baseAmountCents)*taxRateBasisPoints + 5000) / 10000)
}

// ComputeInvoiceCents prices a completed rental from actual possession
// time, not the originally booked dates, so early and late returns are
// billed for what was actually used.
func ComputeInvoiceCents(dailyRateCents int32, checkout, checkin time.Time, lateFeeCents, damageFeeCents, otherChargesCents int32) (InvoiceBreakdown, error) {
	if checkin.Before(checkout) {
		return InvoiceBreakdown{}, domain.NewValidationError("check-in time precedes checkout time")
	}
	if lateFeeCents < 0 || damageFeeCents < 0 || otherChargesCents < 0 {
		return InvoiceBreakdown{}, domain.NewValidationError("fee amounts must not be negative")
	}

	days := RentalDays(checkout, checkin)
	base := dailyRateCents * days
	tax := TaxCents(base)

	return InvoiceBreakdown{
		RentalDays:        days,
		BaseAmountCents:   base,
		LateFeeCents:      lateFeeCents,
		DamageFeeCents:    damageFeeCents,
		OtherChargesCents: otherChargesCents,
		TaxAmountCents:    tax,
		TotalAmountCents:  base + lateFeeCents + damageFeeCents + otherChargesCents + tax,
	}, nil
}

// RecomputeInvoiceTotalCents rebuilds an invoice total after a fee change,
// reusing the stored base and tax amounts. Idempotent: applying the same
// fees twice yields the same total.
func RecomputeInvoiceTotalCents(baseAmountCents, lateFeeCents, damageFeeCents, otherChargesCents, taxAmountCents int32) int32 {
	return baseAmountCents + lateFeeCents + damageFeeCents + otherChargesCents + taxAmountCents
}
