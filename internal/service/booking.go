package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type bookingService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewBookingService(store repository.Store, emailSvc EmailService) BookingService {
	return &bookingService{store: store, emailSvc: emailSvc}
}

func generateBookingCode() string {
	return fmt.Sprintf("BK-%s", strings.ToUpper(uuid.NewString()[:8]))
}

// checkAvailability verifies the vehicle can be booked for the inclusive
// date range. Runs inside the caller's transaction with the vehicle row
// locked, so two concurrent bookings for the same vehicle serialize here.
// A vehicle that is rented or in maintenance is excluded outright, whatever
// the dates.
func checkAvailability(ctx context.Context, tx repository.Store, vehicle *domain.Vehicle, startDate, endDate string, excludeBookingID int32) error {
	if vehicle.Status != domain.VehicleStatusAvailable {
		return domain.NewConflictError("vehicle %d is %s and cannot be booked", vehicle.ID, vehicle.Status)
	}

	conflict, err := tx.Bookings().HasOverlapping(ctx, vehicle.ID, startDate, endDate, excludeBookingID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.NewConflictError("vehicle %d is already booked between %s and %s", vehicle.ID, startDate, endDate)
	}

	conflict, err = tx.Maintenance().HasOverlapping(ctx, vehicle.ID, startDate, endDate)
	if err != nil {
		return err
	}
	if conflict {
		return domain.NewConflictError("vehicle %d has maintenance scheduled between %s and %s", vehicle.ID, startDate, endDate)
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if _, _, err := utils.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Code:            generateBookingCode(),
		CustomerID:      req.CustomerID,
		VehicleID:       req.VehicleID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Status:          domain.BookingStatusPending,
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer.IsActive != nil && !*customer.IsActive {
			return domain.NewInvalidStateError("customer %d is deactivated", customer.ID)
		}

		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if err := checkAvailability(ctx, tx, vehicle, req.StartDate, req.EndDate, 0); err != nil {
			return err
		}

		// Quoted once at creation from whole days in the range. Never
		// recomputed when the vehicle's rate later changes.
		total, err := utils.QuoteBookingCents(vehicle.DailyRateCents, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		booking.TotalAmountCents = total

		return tx.Bookings().Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("booking created", "booking_id", booking.ID, "code", booking.Code,
		"vehicle_id", booking.VehicleID, "total_cents", booking.TotalAmountCents)
	s.notify(ctx, booking, s.emailSvc.SendBookingConfirmation)

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.store.Bookings().GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.store.Bookings().List(ctx, status)
}

func (s *bookingService) ListCustomerBookings(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	return s.store.Bookings().ListByCustomer(ctx, customerID)
}

// UpdateBooking applies the allow-listed patch. Changing the dates or the
// vehicle re-runs the availability check and re-quotes the total; the
// booking's own windows are excluded from the overlap check so a booking
// never conflicts with itself.
func (s *bookingService) UpdateBooking(ctx context.Context, id int32, patch domain.BookingPatch) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		booking, err = tx.Bookings().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
			return domain.NewInvalidStateError("booking %d is %s and cannot be updated", id, booking.Status)
		}

		reprice := false
		if patch.StartDate != nil {
			booking.StartDate = *patch.StartDate
			reprice = true
		}
		if patch.EndDate != nil {
			booking.EndDate = *patch.EndDate
			reprice = true
		}
		if patch.VehicleID != nil {
			booking.VehicleID = *patch.VehicleID
			reprice = true
		}
		if patch.PickupLocation != nil {
			booking.PickupLocation = *patch.PickupLocation
		}
		if patch.DropoffLocation != nil {
			booking.DropoffLocation = *patch.DropoffLocation
		}

		if _, _, err := utils.ValidateDateRange(booking.StartDate, booking.EndDate); err != nil {
			return err
		}

		if reprice {
			vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, booking.VehicleID)
			if err != nil {
				return err
			}
			if err := checkAvailability(ctx, tx, vehicle, booking.StartDate, booking.EndDate, booking.ID); err != nil {
				return err
			}
			total, err := utils.QuoteBookingCents(vehicle.DailyRateCents, booking.StartDate, booking.EndDate)
			if err != nil {
				return err
			}
			booking.TotalAmountCents = total
		}

		return tx.Bookings().Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingStatusConfirmed)
}

func (s *bookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.transition(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, booking, s.emailSvc.SendBookingCancellation)
	return booking, nil
}

func (s *bookingService) transition(ctx context.Context, id int32, next domain.BookingStatus) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		booking, err = tx.Bookings().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(next) {
			return domain.NewInvalidStateError("booking %d is %s and cannot become %s", id, booking.Status, next)
		}
		if next == domain.BookingStatusCancelled {
			// A checked-out booking cannot be cancelled; the vehicle is out.
			rental, err := tx.Rentals().GetByBookingID(ctx, id)
			if err == nil && rental.Status == domain.RentalStatusActive {
				return domain.NewInvalidStateError("booking %d has an active rental and cannot be cancelled", id)
			}
			if err != nil && domain.CodeOf(err) != domain.ErrCodeNotFound {
				return err
			}
		}
		booking.Status = next
		return tx.Bookings().UpdateStatus(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("booking status changed", "booking_id", id, "status", next)
	return booking, nil
}

// notify emails the booking's customer. Failures are logged, never
// surfaced: the booking mutation has already committed.
func (s *bookingService) notify(ctx context.Context, booking *domain.Booking, send func(context.Context, string, string, *domain.Booking) error) {
	customer, err := s.store.Customers().GetByID(ctx, booking.CustomerID)
	if err != nil {
		logger.Warn("could not load customer for booking email", "booking_id", booking.ID, "error", err)
		return
	}
	name := customer.FirstName + " " + customer.LastName
	if err := send(ctx, customer.Email, name, booking); err != nil {
		logger.Warn("booking email failed", "booking_id", booking.ID, "error", err)
	}
}
