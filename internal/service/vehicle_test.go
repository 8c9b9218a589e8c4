package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

func TestVehicleService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	customer := store.addCustomer()
	vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)

	bookingSvc := service.NewBookingService(store, noopEmail{})
	_, err := bookingSvc.CreateBooking(ctx, service.CreateBookingRequest{
		CustomerID: customer.ID, VehicleID: vehicle.ID,
		StartDate: "2025-10-15", EndDate: "2025-10-20",
	})
	assert.NoError(t, err)

	svc := service.NewVehicleService(store)

	available, err := svc.CheckAvailability(ctx, vehicle.ID, "2025-10-18", "2025-10-22")
	assert.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckAvailability(ctx, vehicle.ID, "2025-10-21", "2025-10-25")
	assert.NoError(t, err)
	assert.True(t, available)

	_, err = svc.CheckAvailability(ctx, 999, "2025-10-21", "2025-10-25")
	assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(err))
}

func TestVehicleService_AddVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToAvailable", func(t *testing.T) {
		store := newFakeStore()
		svc := service.NewVehicleService(store)

		v := &domain.Vehicle{RegistrationNumber: "XYZ-789", Make: "Honda", Model: "Civic", DailyRateCents: 28000}
		assert.NoError(t, svc.AddVehicle(ctx, v))
		assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
	})

	t.Run("NonPositiveRateRejected", func(t *testing.T) {
		store := newFakeStore()
		svc := service.NewVehicleService(store)

		v := &domain.Vehicle{RegistrationNumber: "XYZ-789", Make: "Honda", Model: "Civic", DailyRateCents: 0}
		err := svc.AddVehicle(ctx, v)
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
	})
}

func TestVehicleService_DeleteVehicle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rented := store.addVehicle(30000, domain.VehicleStatusRented)
	idle := store.addVehicle(30000, domain.VehicleStatusAvailable)
	svc := service.NewVehicleService(store)

	err := svc.DeleteVehicle(ctx, rented.ID)
	assert.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))

	assert.NoError(t, svc.DeleteVehicle(ctx, idle.ID))
	_, err = svc.GetVehicle(ctx, idle.ID)
	assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(err))
}
