package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type rentalService struct {
	store    repository.Store
	emailSvc EmailService
}

func NewRentalService(store repository.Store, emailSvc EmailService) RentalService {
	return &rentalService{store: store, emailSvc: emailSvc}
}

// Checkout hands the vehicle over against a confirmed booking. The booking,
// the vehicle flip to rented and the rental row commit together or not at
// all.
func (s *rentalService) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Rental, error) {
	if req.CheckoutMileage < 0 {
		return nil, domain.NewValidationError("checkout mileage must not be negative")
	}

	rental := &domain.Rental{
		BookingID:         req.BookingID,
		CheckoutDate:      time.Now(),
		CheckoutMileage:   req.CheckoutMileage,
		CheckoutStaffID:   req.StaffID,
		FuelLevelOut:      req.FuelLevel,
		ConditionNotesOut: req.ConditionNotes,
		Status:            domain.RentalStatusActive,
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		booking, err := tx.Bookings().GetByIDForUpdate(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if booking.Status != domain.BookingStatusConfirmed {
			return domain.NewInvalidStateError("booking %d is %s, only confirmed bookings can be checked out", booking.ID, booking.Status)
		}

		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, booking.VehicleID)
		if err != nil {
			return err
		}
		if !vehicle.Status.CanTransitionTo(domain.VehicleStatusRented) {
			return domain.NewInvalidStateError("vehicle %d is %s and cannot be checked out", vehicle.ID, vehicle.Status)
		}

		if err := tx.Rentals().Create(ctx, rental); err != nil {
			return err
		}
		return tx.Vehicles().UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusRented)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("vehicle checked out", "rental_id", rental.ID, "booking_id", req.BookingID, "staff_id", req.StaffID)
	return rental, nil
}

// Checkin closes the rental and prices it. Billing runs off actual
// wall-clock possession, not the booked dates: the elapsed time is rounded
// up to whole days with a one day floor. The rental, the invoice, the
// booking completion and the vehicle release commit atomically.
func (s *rentalService) Checkin(ctx context.Context, req CheckinRequest) (*domain.Rental, *domain.Invoice, error) {
	var (
		rental  *domain.Rental
		invoice *domain.Invoice
	)

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		rental, err = tx.Rentals().GetByIDForUpdate(ctx, req.RentalID)
		if err != nil {
			return err
		}
		if !rental.Status.CanTransitionTo(domain.RentalStatusCompleted) {
			return domain.NewInvalidStateError("rental %d is %s and cannot be checked in", rental.ID, rental.Status)
		}
		if req.CheckinMileage < rental.CheckoutMileage {
			return domain.NewValidationError("check-in mileage %d is below checkout mileage %d", req.CheckinMileage, rental.CheckoutMileage)
		}

		booking, err := tx.Bookings().GetByIDForUpdate(ctx, rental.BookingID)
		if err != nil {
			return err
		}
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, booking.VehicleID)
		if err != nil {
			return err
		}

		now := time.Now()
		breakdown, err := utils.ComputeInvoiceCents(vehicle.DailyRateCents, rental.CheckoutDate, now,
			req.LateFeeCents, req.DamageFeeCents, req.OtherChargesCents)
		if err != nil {
			return err
		}

		rental.CheckinDate = &now
		rental.CheckinMileage = &req.CheckinMileage
		rental.CheckinStaffID = &req.StaffID
		rental.FuelLevelIn = &req.FuelLevel
		rental.ConditionNotesIn = &req.ConditionNotes
		rental.Status = domain.RentalStatusCompleted
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}

		if err := tx.Vehicles().UpdateStatusAndMileage(ctx, vehicle.ID, domain.VehicleStatusAvailable, req.CheckinMileage); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, booking.ID, domain.BookingStatusCompleted); err != nil {
			return err
		}

		invoice = &domain.Invoice{
			RentalID:          rental.ID,
			RentalDays:        breakdown.RentalDays,
			BaseAmountCents:   breakdown.BaseAmountCents,
			LateFeeCents:      breakdown.LateFeeCents,
			DamageFeeCents:    breakdown.DamageFeeCents,
			OtherChargesCents: breakdown.OtherChargesCents,
			TaxAmountCents:    breakdown.TaxAmountCents,
			TotalAmountCents:  breakdown.TotalAmountCents,
			PaymentStatus:     domain.PaymentStatusPending,
			InvoiceDate:       now,
		}
		return tx.Invoices().Create(ctx, invoice)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("vehicle checked in", "rental_id", rental.ID, "invoice_id", invoice.ID,
		"rental_days", invoice.RentalDays, "total_cents", invoice.TotalAmountCents)
	s.sendReceipt(ctx, rental, invoice)

	return rental, invoice, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.store.Rentals().GetByID(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.store.Rentals().List(ctx, status)
}

func (s *rentalService) ListCustomerRentals(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	return s.store.Rentals().ListByCustomer(ctx, customerID)
}

// sendReceipt emails the invoice to the customer. Failures are logged, not
// surfaced: the check-in has already committed.
func (s *rentalService) sendReceipt(ctx context.Context, rental *domain.Rental, invoice *domain.Invoice) {
	booking, err := s.store.Bookings().GetByID(ctx, rental.BookingID)
	if err != nil {
		logger.Warn("could not load booking for receipt email", "rental_id", rental.ID, "error", err)
		return
	}
	customer, err := s.store.Customers().GetByID(ctx, booking.CustomerID)
	if err != nil {
		logger.Warn("could not load customer for receipt email", "rental_id", rental.ID, "error", err)
		return
	}
	name := customer.FirstName + " " + customer.LastName
	if err := s.emailSvc.SendInvoiceReceipt(ctx, customer.Email, name, invoice); err != nil {
		logger.Warn("receipt email failed", "rental_id", rental.ID, "error", err)
	}
}
