package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCompleted))

	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusPending))

	// Terminal states: a completed booking can never be cancelled.
	assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusConfirmed))
}

func TestRentalStatusTransitions(t *testing.T) {
	assert.True(t, RentalStatusActive.CanTransitionTo(RentalStatusCompleted))
	assert.True(t, RentalStatusActive.CanTransitionTo(RentalStatusCancelled))
	assert.False(t, RentalStatusCompleted.CanTransitionTo(RentalStatusActive))
	assert.False(t, RentalStatusCancelled.CanTransitionTo(RentalStatusCompleted))
}

func TestVehicleStatusTransitions(t *testing.T) {
	assert.True(t, VehicleStatusAvailable.CanTransitionTo(VehicleStatusRented))
	assert.True(t, VehicleStatusAvailable.CanTransitionTo(VehicleStatusMaintenance))
	assert.True(t, VehicleStatusRented.CanTransitionTo(VehicleStatusAvailable))
	assert.True(t, VehicleStatusMaintenance.CanTransitionTo(VehicleStatusAvailable))

	// A rented vehicle never enters maintenance directly.
	assert.False(t, VehicleStatusRented.CanTransitionTo(VehicleStatusMaintenance))
	assert.False(t, VehicleStatusMaintenance.CanTransitionTo(VehicleStatusRented))
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPaid))
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusRefunded))
	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusRefunded))
	assert.False(t, PaymentStatusRefunded.CanTransitionTo(PaymentStatusPending))
}

func TestMaintenanceStatus(t *testing.T) {
	assert.True(t, MaintenanceStatusScheduled.Active())
	assert.True(t, MaintenanceStatusInProgress.Active())
	assert.False(t, MaintenanceStatusCompleted.Active())

	assert.True(t, MaintenanceStatusScheduled.CanTransitionTo(MaintenanceStatusInProgress))
	assert.True(t, MaintenanceStatusScheduled.CanTransitionTo(MaintenanceStatusCompleted))
	assert.True(t, MaintenanceStatusInProgress.CanTransitionTo(MaintenanceStatusCompleted))
	assert.False(t, MaintenanceStatusCompleted.CanTransitionTo(MaintenanceStatusScheduled))
	assert.False(t, MaintenanceStatusInProgress.CanTransitionTo(MaintenanceStatusScheduled))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeConflict, CodeOf(NewConflictError("boom")))
	assert.Equal(t, ErrCodeInternal, CodeOf(assert.AnError))
}
