package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

func TestMaintenanceService_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("TakesVehicleOutOfService", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)

		end := "2025-11-05"
		record := &domain.Maintenance{
			VehicleID: vehicle.ID, MaintenanceType: "service",
			StartDate: "2025-11-01", EndDate: &end, CostCents: 15000,
		}
		err := svc.ScheduleMaintenance(ctx, record)
		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusScheduled, record.Status)
		assert.Equal(t, domain.VehicleStatusMaintenance, store.vehicles[vehicle.ID].Status)
	})

	t.Run("RentedVehicleRejected", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusRented)
		svc := service.NewMaintenanceService(store)

		err := svc.ScheduleMaintenance(ctx, &domain.Maintenance{
			VehicleID: vehicle.ID, MaintenanceType: "repair", StartDate: "2025-11-01",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))
	})

	t.Run("OpenEndedWindowConflictsWithFutureBooking", func(t *testing.T) {
		store := newFakeStore()
		customer := store.addCustomer()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)

		bookingSvc := service.NewBookingService(store, noopEmail{})
		_, err := bookingSvc.CreateBooking(ctx, service.CreateBookingRequest{
			CustomerID: customer.ID, VehicleID: vehicle.ID,
			StartDate: "2026-03-01", EndDate: "2026-03-05",
		})
		assert.NoError(t, err)

		// No end date means the window extends indefinitely, so even a
		// far-future booking blocks it.
		svc := service.NewMaintenanceService(store)
		err = svc.ScheduleMaintenance(ctx, &domain.Maintenance{
			VehicleID: vehicle.ID, MaintenanceType: "repair", StartDate: "2025-11-01",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeConflict, domain.CodeOf(err))
	})

	t.Run("MissingTypeRejected", func(t *testing.T) {
		store := newFakeStore()
		svc := service.NewMaintenanceService(store)

		err := svc.ScheduleMaintenance(ctx, &domain.Maintenance{
			VehicleID: 1, StartDate: "2025-11-01",
		})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
	})
}

func TestMaintenanceService_Release(t *testing.T) {
	ctx := context.Background()

	schedule := func(t *testing.T, svc service.MaintenanceService, vehicleID int32, start string) *domain.Maintenance {
		t.Helper()
		record := &domain.Maintenance{
			VehicleID: vehicleID, MaintenanceType: "service", StartDate: start,
		}
		assert.NoError(t, svc.ScheduleMaintenance(ctx, record))
		return record
	}

	t.Run("CompletingLastWindowReleasesVehicle", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)
		record := schedule(t, svc, vehicle.ID, "2025-11-01")

		done := domain.MaintenanceStatusCompleted
		_, err := svc.UpdateMaintenance(ctx, record.ID, domain.MaintenancePatch{Status: &done})
		assert.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusAvailable, store.vehicles[vehicle.ID].Status)
	})

	t.Run("VehicleStaysDownWhileAnotherWindowIsActive", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)
		first := schedule(t, svc, vehicle.ID, "2025-11-01")
		second := schedule(t, svc, vehicle.ID, "2025-11-10")

		done := domain.MaintenanceStatusCompleted
		_, err := svc.UpdateMaintenance(ctx, first.ID, domain.MaintenancePatch{Status: &done})
		assert.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusMaintenance, store.vehicles[vehicle.ID].Status)

		_, err = svc.UpdateMaintenance(ctx, second.ID, domain.MaintenancePatch{Status: &done})
		assert.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusAvailable, store.vehicles[vehicle.ID].Status)
	})

	t.Run("DeleteReleasesVehicle", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)
		record := schedule(t, svc, vehicle.ID, "2025-11-01")

		err := svc.DeleteMaintenance(ctx, record.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusAvailable, store.vehicles[vehicle.ID].Status)
	})

	t.Run("OnlyScheduledRecordsCanBeDeleted", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)
		record := schedule(t, svc, vehicle.ID, "2025-11-01")

		inProgress := domain.MaintenanceStatusInProgress
		_, err := svc.UpdateMaintenance(ctx, record.ID, domain.MaintenancePatch{Status: &inProgress})
		assert.NoError(t, err)

		err = svc.DeleteMaintenance(ctx, record.ID)
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))
	})

	t.Run("CompletedWindowCannotReopen", func(t *testing.T) {
		store := newFakeStore()
		vehicle := store.addVehicle(30000, domain.VehicleStatusAvailable)
		svc := service.NewMaintenanceService(store)
		record := schedule(t, svc, vehicle.ID, "2025-11-01")

		done := domain.MaintenanceStatusCompleted
		_, err := svc.UpdateMaintenance(ctx, record.ID, domain.MaintenancePatch{Status: &done})
		assert.NoError(t, err)

		scheduled := domain.MaintenanceStatusScheduled
		_, err = svc.UpdateMaintenance(ctx, record.ID, domain.MaintenancePatch{Status: &scheduled})
		assert.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidState, domain.CodeOf(err))
	})
}
