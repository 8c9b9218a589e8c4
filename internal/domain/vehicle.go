package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// CanTransitionTo enforces the vehicle state machine: a vehicle moves
// between available and exactly one of rented or maintenance, never from
// rented to maintenance directly.
func (s VehicleStatus) CanTransitionTo(next VehicleStatus) bool {
	switch s {
	case VehicleStatusAvailable:
		return next == VehicleStatusRented || next == VehicleStatusMaintenance
	case VehicleStatusRented:
		return next == VehicleStatusAvailable
	case VehicleStatusMaintenance:
		return next == VehicleStatusAvailable
	}
	return false
}

type Vehicle struct {
	ID                 int32         `json:"id"`
	RegistrationNumber string        `json:"registration_number"`
	Make               string        `json:"make"`
	Model              string        `json:"model"`
	Year               int32         `json:"year"`
	Category           string        `json:"category"`
	Color              string        `json:"color"`
	Seats              int32         `json:"seats"`
	Mileage            int32         `json:"mileage"`
	DailyRateCents     int32         `json:"daily_rate_cents"`
	Status             VehicleStatus `json:"status"`
	ImageURL           string        `json:"image_url"`
	CreatedOn          time.Time     `json:"created_on"`
}

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	Category     string
	Status       VehicleStatus
	MinRateCents int32
	MaxRateCents int32
}

// VehiclePatch is the allow-listed set of updatable vehicle fields. Nil
// means "leave unchanged".
type VehiclePatch struct {
	RegistrationNumber *string `json:"registration_number"`
	Make               *string `json:"make"`
	Model              *string `json:"model"`
	Year               *int32  `json:"year"`
	Category           *string `json:"category"`
	Color              *string `json:"color"`
	Seats              *int32  `json:"seats"`
	Mileage            *int32  `json:"mileage"`
	DailyRateCents     *int32  `json:"daily_rate_cents"`
	ImageURL           *string `json:"image_url"`
}
