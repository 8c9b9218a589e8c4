package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

// Store aggregates the entity repositories behind one injectable handle.
// WithinTx runs fn against a store whose repositories all share a single
// database transaction; if fn returns an error nothing is committed. Every
// multi-entity mutation in the workflow layer goes through WithinTx.
type Store interface {
	Users() UserRepository
	Customers() CustomerRepository
	Vehicles() VehicleRepository
	Bookings() BookingRepository
	Rentals() RentalRepository
	Invoices() InvoiceRepository
	Maintenance() MaintenanceRepository
	Reports() ReportRepository

	WithinTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetActive(ctx context.Context, id int32, active bool) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// GetByIDForUpdate locks the vehicle row for the remainder of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	UpdateStatusAndMileage(ctx context.Context, id int32, status domain.VehicleStatus, mileage int32) error
	Delete(ctx context.Context, id int32) error
	// SearchAvailable returns vehicles with status available and no
	// conflicting booking or maintenance window in the inclusive range.
	SearchAvailable(ctx context.Context, startDate, endDate, category string) ([]domain.Vehicle, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// GetByIDForUpdate locks the booking row for the remainder of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error)
	List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	// HasOverlapping reports whether any pending or confirmed booking for
	// the vehicle overlaps the inclusive date range, ignoring excludeID.
	HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string, excludeID int32) (bool, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// GetByIDForUpdate locks the rental row for the remainder of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error)
	List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	GetByRentalID(ctx context.Context, rentalID int32) (*domain.Invoice, error)
	List(ctx context.Context, paymentStatus domain.PaymentStatus) ([]domain.Invoice, error)
	UpdateFees(ctx context.Context, invoice *domain.Invoice) error
	UpdatePayment(ctx context.Context, id int32, status domain.PaymentStatus, method string) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, record *domain.Maintenance) error
	GetByID(ctx context.Context, id int32) (*domain.Maintenance, error)
	List(ctx context.Context, status domain.MaintenanceStatus) ([]domain.Maintenance, error)
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error)
	Update(ctx context.Context, record *domain.Maintenance) error
	Delete(ctx context.Context, id int32) error
	// CountActive counts scheduled or in-progress windows for the vehicle,
	// ignoring excludeID. The vehicle reverts to available only at zero.
	CountActive(ctx context.Context, vehicleID int32, excludeID int32) (int32, error)
	// HasOverlapping reports whether any active window overlaps the
	// inclusive date range; open-ended windows overlap everything from
	// their start date onward.
	HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (bool, error)
}

type ReportRepository interface {
	FleetReport(ctx context.Context) (*domain.FleetReport, error)
	RevenueReport(ctx context.Context) (*domain.RevenueReport, error)
	CustomerActivityReport(ctx context.Context) (*domain.CustomerActivityReport, error)
	// OverdueReturns lists active rentals whose booked end date has passed.
	OverdueReturns(ctx context.Context) ([]domain.OverdueReturn, error)
}
