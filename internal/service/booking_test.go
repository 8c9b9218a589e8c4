package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("QuotesWholeDays", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID,
			VehicleID:  vehicle.ID,
			StartDate:  "2025-10-15",
			EndDate:    "2025-10-20",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(175000), booking.TotalAmountCents)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.NotEmpty(t, booking.Code)
	})

	t.Run("DoubleBookingRejected", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.NoError(t, err)

		_, err = svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-18", EndDate: "2025-10-22",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))
	})

	t.Run("SharedBoundaryDayRejected", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.NoError(t, err)

		// Pickup on the previous booking's drop-off day conflicts.
		_, err = svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-20", EndDate: "2025-10-25",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))

		// The day after is fine.
		_, err = svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-21", EndDate: "2025-10-25",
		})
		assert.NoError(t, err)
	})

	t.Run("RentedVehicleRejectedRegardlessOfDates", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusRented)
		svc := service.NewBookingService(store, noopEmail{})

		// No booking rows exist, so no date range overlaps; the status alone
		// must exclude the vehicle.
		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2026-01-10", EndDate: "2026-01-15",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))
	})

	t.Run("MaintenanceVehicleRejectedRegardlessOfDates", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusMaintenance)
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2026-01-10", EndDate: "2026-01-15",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))
	})

	t.Run("DeactivatedCustomerRejected", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		inactive := false
		customer.IsActive = &inactive
		vehicle := store.addVehicle(35000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))
	})

	t.Run("MaintenanceWindowBlocksBooking", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(35000, domain.VehicleStatusAvailable)
		store.maintenance[99] = &domain.Maintenance{
			ID: 99, VehicleID: vehicle.ID, StartDate: "2025-10-18",
			Status: domain.MaintenanceStatusScheduled, // open-ended
		}
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))
	})

	t.Run("InvalidDateRange", func(t *testing.T) {
		store := newFakeStore()
		svc := service.NewBookingService(store, noopEmail{})

		_, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: 1, VehicleID: 1,
			StartDate: "2025-10-20", EndDate: "2025-10-15",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
	})
}

func TestBookingService_UpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("DateChangeReprices", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-17",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(60000), booking.TotalAmountCents)

		newEnd := "2025-10-20"
		updated, err := svc.UpdateBooking(ctx, booking.ID, domain.BookingPatch{EndDate: &newEnd})
		assert.NoError(t, err)
		assert.Equal(t, int32(150000), updated.TotalAmountCents)
	})

	t.Run("DoesNotConflictWithItself", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.NoError(t, err)

		// Shifting the end date inside the original range must not trip the
		// overlap check against this booking's own window.
		newEnd := "2025-10-18"
		_, err = svc.UpdateBooking(ctx, booking.ID, domain.BookingPatch{EndDate: &newEnd})
		assert.NoError(t, err)
	})

	t.Run("CancelledBookingCannotBeUpdated", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewBookingService(store, noopEmail{})

		booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2025-10-15", EndDate: "2025-10-20",
		})
		assert.NoError(t, err)
		_, err = svc.CancelBooking(ctx, booking.ID)
		assert.NoError(t, err)

		loc := "airport"
		_, err = svc.UpdateBooking(ctx, booking.ID, domain.BookingPatch{PickupLocation: &loc})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))
	})
}

func TestBookingService_Transitions(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	customer := store.addCustomer()
	vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
	svc := service.NewBookingService(store, noopEmail{})

	booking, err := svc.CreateBooking(ctx, service.CreateBookingRequest{
		CustomerID: customer.ID, VehicleID: vehicle.ID,
		StartDate: "2025-10-15", EndDate: "2025-10-20",
	})
	assert.NoError(t, err)

	confirmed, err := svc.ConfirmBooking(ctx, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)

	// Confirming twice is an invalid transition.
	_, err = svc.ConfirmBooking(ctx, booking.ID)
	assert.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))

	cancelled, err := svc.CancelBooking(ctx, booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)

	// A cancelled booking frees the vehicle for the same dates.
	_, err = svc.CreateBooking(ctx, service.CreateBookingRequest{
		CustomerID: customer.ID, VehicleID: vehicle.ID,
		StartDate: "2025-10-15", EndDate: "2025-10-20",
	})
	assert.NoError(t, err)
}
