package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CanTransitionTo enforces the invoice payment state machine.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending &&
		(next == PaymentStatusPaid || next == PaymentStatusRefunded)
}

// Invoice is the billing record created at check-in, 1:1 with a completed
// rental. All amounts are integer cents.
type Invoice struct {
	ID                int32         `json:"id"`
	RentalID          int32         `json:"rental_id"`
	RentalDays        int32         `json:"rental_days"`
	BaseAmountCents   int32         `json:"base_amount_cents"`
	LateFeeCents      int32         `json:"late_fee_cents"`
	DamageFeeCents    int32         `json:"damage_fee_cents"`
	OtherChargesCents int32         `json:"other_charges_cents"`
	TaxAmountCents    int32         `json:"tax_amount_cents"`
	TotalAmountCents  int32         `json:"total_amount_cents"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaymentMethod     string        `json:"payment_method,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	InvoiceDate       time.Time     `json:"invoice_date"`

	// Populated on joined reads
	CustomerName string `json:"customer_name,omitempty"`
	VehicleMake  string `json:"vehicle_make,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Registration string `json:"registration_number,omitempty"`
}

// InvoicePatch adjusts fee fields on a pending invoice. Base amount and tax
// are never re-derived by a patch; the stored values are reused when the
// total is recomputed.
type InvoicePatch struct {
	LateFeeCents      *int32  `json:"late_fee_cents"`
	DamageFeeCents    *int32  `json:"damage_fee_cents"`
	OtherChargesCents *int32  `json:"other_charges_cents"`
	Notes             *string `json:"notes"`
}
