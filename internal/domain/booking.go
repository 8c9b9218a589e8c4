package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// CanTransitionTo enforces the booking state machine. Completed and
// cancelled are terminal: in particular a completed booking can no longer
// be cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled || next == BookingStatusCompleted
	}
	return false
}

// Booking is a reservation of a vehicle for an inclusive calendar date
// range, prior to physical handover. Dates are yyyy-mm-dd strings.
type Booking struct {
	ID               int32         `json:"id"`
	Code             string        `json:"code"`
	CustomerID       int32         `json:"customer_id"`
	VehicleID        int32         `json:"vehicle_id"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	PickupLocation   string        `json:"pickup_location"`
	DropoffLocation  string        `json:"dropoff_location"`
	TotalAmountCents int32         `json:"total_amount_cents"`
	Status           BookingStatus `json:"status"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`

	// Populated on joined reads
	CustomerName string `json:"customer_name,omitempty"`
	VehicleMake  string `json:"vehicle_make,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Registration string `json:"registration_number,omitempty"`
}

// BookingPatch is the allow-listed set of updatable booking fields. Status
// changes go through confirm/cancel/checkout, never through a patch.
type BookingPatch struct {
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	VehicleID       *int32  `json:"vehicle_id"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
}
