package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type vehicleService struct {
	store repository.Store
}

func NewVehicleService(store repository.Store) VehicleService {
	return &vehicleService{store: store}
}

func validateVehicle(v *domain.Vehicle) error {
	if v.RegistrationNumber == "" {
		return domain.NewValidationError("registration number is required")
	}
	if v.Make == "" || v.Model == "" {
		return domain.NewValidationError("make and model are required")
	}
	if v.DailyRateCents <= 0 {
		return domain.NewValidationError("daily rate must be positive")
	}
	if v.Mileage < 0 {
		return domain.NewValidationError("mileage must not be negative")
	}
	return nil
}

func (s *vehicleService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	if err := s.store.Vehicles().Create(ctx, vehicle); err != nil {
		return err
	}
	logger.Info("vehicle added", "vehicle_id", vehicle.ID, "registration", vehicle.RegistrationNumber)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByID(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	return s.store.Vehicles().List(ctx, filter)
}

// UpdateVehicle applies the allow-listed patch fields. Status is not
// patchable here; it only moves through bookings, rentals and maintenance.
func (s *vehicleService) UpdateVehicle(ctx context.Context, id int32, patch domain.VehiclePatch) (*domain.Vehicle, error) {
	vehicle, err := s.store.Vehicles().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.RegistrationNumber != nil {
		vehicle.RegistrationNumber = *patch.RegistrationNumber
	}
	if patch.Make != nil {
		vehicle.Make = *patch.Make
	}
	if patch.Model != nil {
		vehicle.Model = *patch.Model
	}
	if patch.Year != nil {
		vehicle.Year = *patch.Year
	}
	if patch.Category != nil {
		vehicle.Category = *patch.Category
	}
	if patch.Color != nil {
		vehicle.Color = *patch.Color
	}
	if patch.Seats != nil {
		vehicle.Seats = *patch.Seats
	}
	if patch.Mileage != nil {
		vehicle.Mileage = *patch.Mileage
	}
	if patch.DailyRateCents != nil {
		vehicle.DailyRateCents = *patch.DailyRateCents
	}
	if patch.ImageURL != nil {
		vehicle.ImageURL = *patch.ImageURL
	}

	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}
	if err := s.store.Vehicles().Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle removes a vehicle from the fleet. A vehicle that is rented
// or under maintenance cannot be deleted.
func (s *vehicleService) DeleteVehicle(ctx context.Context, id int32) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if vehicle.Status != domain.VehicleStatusAvailable {
			return domain.NewInvalidStateError("vehicle %d is %s and cannot be deleted", id, vehicle.Status)
		}
		return tx.Vehicles().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.Info("vehicle deleted", "vehicle_id", id)
	return nil
}

func (s *vehicleService) SearchAvailable(ctx context.Context, startDate, endDate, category string) ([]domain.Vehicle, error) {
	if _, _, err := utils.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.store.Vehicles().SearchAvailable(ctx, startDate, endDate, category)
}

// CheckAvailability reports whether one vehicle is free for the inclusive
// date range: status available, no overlapping pending or confirmed booking
// and no overlapping active maintenance window.
func (s *vehicleService) CheckAvailability(ctx context.Context, id int32, startDate, endDate string) (bool, error) {
	if _, _, err := utils.ValidateDateRange(startDate, endDate); err != nil {
		return false, err
	}
	vehicle, err := s.store.Vehicles().GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return false, nil
	}

	conflict, err := s.store.Bookings().HasOverlapping(ctx, id, startDate, endDate, 0)
	if err != nil {
		return false, err
	}
	if conflict {
		return false, nil
	}
	conflict, err = s.store.Maintenance().HasOverlapping(ctx, id, startDate, endDate)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
