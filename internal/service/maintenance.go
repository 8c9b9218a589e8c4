package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type maintenanceService struct {
	store repository.Store
}

func NewMaintenanceService(store repository.Store) MaintenanceService {
	return &maintenanceService{store: store}
}

// ScheduleMaintenance opens an out-of-service window and takes the vehicle
// off the fleet. A rented vehicle cannot enter maintenance; it has to come
// back first. A nil end date leaves the window open-ended, which conflicts
// with every booking from the start date onward.
func (s *maintenanceService) ScheduleMaintenance(ctx context.Context, record *domain.Maintenance) error {
	if record.MaintenanceType == "" {
		return domain.NewValidationError("maintenance type is required")
	}
	if record.CostCents < 0 {
		return domain.NewValidationError("cost must not be negative")
	}
	if _, err := utils.ParseDate(record.StartDate); err != nil {
		return err
	}
	if record.EndDate != nil {
		if _, _, err := utils.ValidateDateRange(record.StartDate, *record.EndDate); err != nil {
			return err
		}
	}
	if record.Status == "" {
		record.Status = domain.MaintenanceStatusScheduled
	}
	if !record.Status.Active() {
		return domain.NewValidationError("a new maintenance window must be scheduled or in progress")
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, record.VehicleID)
		if err != nil {
			return err
		}
		// A vehicle already in maintenance can take further windows; only
		// the transition from rented is forbidden.
		if vehicle.Status != domain.VehicleStatusMaintenance && !vehicle.Status.CanTransitionTo(domain.VehicleStatusMaintenance) {
			return domain.NewInvalidStateError("vehicle %d is %s and cannot enter maintenance", vehicle.ID, vehicle.Status)
		}

		endDate := ""
		if record.EndDate != nil {
			endDate = *record.EndDate
		}
		conflict, err := tx.Bookings().HasOverlapping(ctx, record.VehicleID, record.StartDate, openEndedUpperBound(endDate), 0)
		if err != nil {
			return err
		}
		if conflict {
			return domain.NewConflictError("vehicle %d has bookings overlapping the maintenance window", record.VehicleID)
		}

		if err := tx.Maintenance().Create(ctx, record); err != nil {
			return err
		}
		return tx.Vehicles().UpdateStatus(ctx, record.VehicleID, domain.VehicleStatusMaintenance)
	})
	if err != nil {
		return err
	}

	logger.Info("maintenance scheduled", "maintenance_id", record.ID, "vehicle_id", record.VehicleID,
		"start_date", record.StartDate)
	return nil
}

// openEndedUpperBound substitutes a far-future date for a missing end date
// so the inclusive overlap predicate treats the window as unbounded.
func openEndedUpperBound(endDate string) string {
	if endDate == "" {
		return "9999-12-31"
	}
	return endDate
}

func (s *maintenanceService) GetMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error) {
	return s.store.Maintenance().GetByID(ctx, id)
}

func (s *maintenanceService) ListMaintenance(ctx context.Context, status domain.MaintenanceStatus) ([]domain.Maintenance, error) {
	return s.store.Maintenance().List(ctx, status)
}

func (s *maintenanceService) ListVehicleMaintenance(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error) {
	return s.store.Maintenance().ListByVehicle(ctx, vehicleID)
}

// UpdateMaintenance applies the allow-listed patch. Completing a window
// releases the vehicle back to available only when no other active window
// remains for it.
func (s *maintenanceService) UpdateMaintenance(ctx context.Context, id int32, patch domain.MaintenancePatch) (*domain.Maintenance, error) {
	var record *domain.Maintenance
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		record, err = tx.Maintenance().GetByID(ctx, id)
		if err != nil {
			return err
		}
		wasActive := record.Status.Active()

		if patch.Status != nil && *patch.Status != record.Status {
			if !record.Status.CanTransitionTo(*patch.Status) {
				return domain.NewInvalidStateError("maintenance %d is %s and cannot become %s", id, record.Status, *patch.Status)
			}
			record.Status = *patch.Status
		}
		if patch.EndDate != nil {
			if _, _, err := utils.ValidateDateRange(record.StartDate, *patch.EndDate); err != nil {
				return err
			}
			record.EndDate = patch.EndDate
		}
		if patch.CostCents != nil {
			if *patch.CostCents < 0 {
				return domain.NewValidationError("cost must not be negative")
			}
			record.CostCents = *patch.CostCents
		}
		if patch.Notes != nil {
			record.Notes = *patch.Notes
		}

		if err := tx.Maintenance().Update(ctx, record); err != nil {
			return err
		}

		if wasActive && !record.Status.Active() {
			return s.releaseVehicleIfIdle(ctx, tx, record.VehicleID, record.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("maintenance updated", "maintenance_id", id, "status", record.Status)
	return record, nil
}

// DeleteMaintenance removes a window that never happened. Only scheduled
// records can be deleted; started or finished work stays on the books.
func (s *maintenanceService) DeleteMaintenance(ctx context.Context, id int32) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		record, err := tx.Maintenance().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if record.Status != domain.MaintenanceStatusScheduled {
			return domain.NewInvalidStateError("maintenance %d is %s, only scheduled records can be deleted", id, record.Status)
		}
		if err := tx.Maintenance().Delete(ctx, id); err != nil {
			return err
		}
		return s.releaseVehicleIfIdle(ctx, tx, record.VehicleID, record.ID)
	})
	if err != nil {
		return err
	}
	logger.Info("maintenance deleted", "maintenance_id", id)
	return nil
}

// releaseVehicleIfIdle flips the vehicle back to available when no active
// maintenance window remains, ignoring the record just closed or deleted.
func (s *maintenanceService) releaseVehicleIfIdle(ctx context.Context, tx repository.Store, vehicleID, excludeID int32) error {
	active, err := tx.Maintenance().CountActive(ctx, vehicleID, excludeID)
	if err != nil {
		return err
	}
	if active > 0 {
		return nil
	}

	vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.Status != domain.VehicleStatusMaintenance {
		return nil
	}
	return tx.Vehicles().UpdateStatus(ctx, vehicleID, domain.VehicleStatusAvailable)
}
