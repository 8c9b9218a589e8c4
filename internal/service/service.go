package service

import (
	"context"

	"carrental-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, *domain.Customer, string, error) // user, profile, access token
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Customer, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	SetCustomerActive(ctx context.Context, id int32, active bool) error
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int32, patch domain.VehiclePatch) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int32) error
	SearchAvailable(ctx context.Context, startDate, endDate, category string) ([]domain.Vehicle, error)
	CheckAvailability(ctx context.Context, id int32, startDate, endDate string) (bool, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	ListBookings(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID int32) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id int32, patch domain.BookingPatch) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int32) (*domain.Booking, error)
}

type RentalService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.Rental, error)
	Checkin(ctx context.Context, req CheckinRequest) (*domain.Rental, *domain.Invoice, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListCustomerRentals(ctx context.Context, customerID int32) ([]domain.Rental, error)
}

type InvoiceService interface {
	GetInvoice(ctx context.Context, id int32) (*domain.Invoice, error)
	GetInvoiceByRental(ctx context.Context, rentalID int32) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, paymentStatus domain.PaymentStatus) ([]domain.Invoice, error)
	UpdateInvoiceFees(ctx context.Context, id int32, patch domain.InvoicePatch) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, id int32, status domain.PaymentStatus, method string) (*domain.Invoice, error)
}

type MaintenanceService interface {
	ScheduleMaintenance(ctx context.Context, record *domain.Maintenance) error
	GetMaintenance(ctx context.Context, id int32) (*domain.Maintenance, error)
	ListMaintenance(ctx context.Context, status domain.MaintenanceStatus) ([]domain.Maintenance, error)
	ListVehicleMaintenance(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id int32, patch domain.MaintenancePatch) (*domain.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id int32) error
}

type ReportService interface {
	FleetReport(ctx context.Context) (*domain.FleetReport, error)
	RevenueReport(ctx context.Context) (*domain.RevenueReport, error)
	CustomerActivityReport(ctx context.Context) (*domain.CustomerActivityReport, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking) error
	SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking) error
	SendInvoiceReceipt(ctx context.Context, email, name string, invoice *domain.Invoice) error
	SendOverdueReminder(ctx context.Context, email, name string, overdue *domain.OverdueReturn) error
}

type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DriversLicense string `json:"drivers_license"`
}

type CreateBookingRequest struct {
	CustomerID      int32  `json:"customer_id"`
	VehicleID       int32  `json:"vehicle_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
}

type CheckoutRequest struct {
	BookingID       int32  `json:"booking_id"`
	StaffID         int32  `json:"-"`
	CheckoutMileage int32  `json:"checkout_mileage"`
	FuelLevel       string `json:"fuel_level"`
	ConditionNotes  string `json:"condition_notes"`
}

type CheckinRequest struct {
	RentalID          int32  `json:"-"`
	StaffID           int32  `json:"-"`
	CheckinMileage    int32  `json:"checkin_mileage"`
	FuelLevel         string `json:"fuel_level"`
	ConditionNotes    string `json:"condition_notes"`
	LateFeeCents      int32  `json:"late_fee_cents"`
	DamageFeeCents    int32  `json:"damage_fee_cents"`
	OtherChargesCents int32  `json:"other_charges_cents"`
}
