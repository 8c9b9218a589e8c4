package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// Active reports whether the window still takes the vehicle out of service.
func (s MaintenanceStatus) Active() bool {
	return s == MaintenanceStatusScheduled || s == MaintenanceStatusInProgress
}

// CanTransitionTo enforces the maintenance state machine.
func (s MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	switch s {
	case MaintenanceStatusScheduled:
		return next == MaintenanceStatusInProgress || next == MaintenanceStatusCompleted
	case MaintenanceStatusInProgress:
		return next == MaintenanceStatusCompleted
	}
	return false
}

// Maintenance is a vehicle out-of-service window. A nil EndDate means
// open-ended: the window conflicts with every range from StartDate onward.
type Maintenance struct {
	ID              int32             `json:"id"`
	VehicleID       int32             `json:"vehicle_id"`
	MaintenanceType string            `json:"maintenance_type"`
	Description     string            `json:"description"`
	StartDate       string            `json:"start_date"`
	EndDate         *string           `json:"end_date,omitempty"`
	Status          MaintenanceStatus `json:"status"`
	CostCents       int32             `json:"cost_cents"`
	PerformedBy     string            `json:"performed_by"`
	Notes           string            `json:"notes"`
	CreatedOn       time.Time         `json:"created_on"`

	// Populated on joined reads
	VehicleMake  string `json:"vehicle_make,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Registration string `json:"registration_number,omitempty"`
}

// MaintenancePatch is the allow-listed set of updatable maintenance fields.
type MaintenancePatch struct {
	Status    *MaintenanceStatus `json:"status"`
	EndDate   *string            `json:"end_date"`
	CostCents *int32             `json:"cost_cents"`
	Notes     *string            `json:"notes"`
}
