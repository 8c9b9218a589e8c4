package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// CanTransitionTo enforces the rental state machine. A rental is immutable
// once completed or cancelled.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	return s == RentalStatusActive &&
		(next == RentalStatusCompleted || next == RentalStatusCancelled)
}

// Rental is the physical possession record, created at checkout 1:1 with a
// confirmed booking and closed at check-in.
type Rental struct {
	ID               int32        `json:"id"`
	BookingID        int32        `json:"booking_id"`
	CheckoutDate     time.Time    `json:"checkout_date"`
	CheckoutMileage  int32        `json:"checkout_mileage"`
	CheckoutStaffID  int32        `json:"checkout_staff_id"`
	FuelLevelOut     string       `json:"fuel_level_out"`
	ConditionNotesOut string      `json:"condition_notes_out"`
	CheckinDate      *time.Time   `json:"checkin_date,omitempty"`
	CheckinMileage   *int32       `json:"checkin_mileage,omitempty"`
	CheckinStaffID   *int32       `json:"checkin_staff_id,omitempty"`
	FuelLevelIn      *string      `json:"fuel_level_in,omitempty"`
	ConditionNotesIn *string      `json:"condition_notes_in,omitempty"`
	Status           RentalStatus `json:"status"`
	CreatedOn        time.Time    `json:"created_on"`
	UpdatedOn        time.Time    `json:"updated_on"`

	// Populated on joined reads
	CustomerID   int32  `json:"customer_id,omitempty"`
	VehicleID    int32  `json:"vehicle_id,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	VehicleMake  string `json:"vehicle_make,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Registration string `json:"registration_number,omitempty"`
}
