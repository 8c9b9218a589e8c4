package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth        service.AuthService
	Customer    service.CustomerService
	Vehicle     service.VehicleService
	Booking     service.BookingService
	Rental      service.RentalService
	Invoice     service.InvoiceService
	Maintenance service.MaintenanceService
	Report      service.ReportService
}

// NewRouter builds the full route table. Vehicle browsing is public; every
// other route requires a valid token, with staff routes further guarded by
// role.
func NewRouter(svcs Services, tokenMgr security.TokenManager) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	customerHandler := NewCustomerHandler(svcs.Customer)
	vehicleHandler := NewVehicleHandler(svcs.Vehicle, svcs.Maintenance)
	bookingHandler := NewBookingHandler(svcs.Booking, svcs.Auth)
	rentalHandler := NewRentalHandler(svcs.Rental, svcs.Invoice, svcs.Auth)
	invoiceHandler := NewInvoiceHandler(svcs.Invoice)
	maintenanceHandler := NewMaintenanceHandler(svcs.Maintenance)
	reportHandler := NewReportHandler(svcs.Report)

	auth := authenticate(tokenMgr)
	staffOnly := requireRoles(domain.UserRoleStaff, domain.UserRoleManager)
	managerOnly := requireRoles(domain.UserRoleManager)

	r := mux.NewRouter()
	r.Use(requestLogger)
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/available", vehicleHandler.SearchAvailable).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/availability", vehicleHandler.Availability).Methods(http.MethodGet)
	api.HandleFunc("/bookings/search", vehicleHandler.SearchAvailable).Methods(http.MethodGet)

	// Any authenticated user
	authed := api.NewRoute().Subrouter()
	authed.Use(auth)
	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/my", bookingHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/my", rentalHandler.ListMine).Methods(http.MethodGet)

	// Staff and manager
	staff := api.NewRoute().Subrouter()
	staff.Use(auth, staffOnly)
	staff.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/customers/{id:[0-9]+}", customerHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/customers/{id:[0-9]+}", customerHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/customers/{id:[0-9]+}/rentals", rentalHandler.ListByCustomer).Methods(http.MethodGet)
	staff.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/vehicles/{id:[0-9]+}/maintenance", vehicleHandler.MaintenanceHistory).Methods(http.MethodGet)
	staff.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/customer/{id:[0-9]+}", bookingHandler.ListByCustomer).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{id:[0-9]+}/confirm", bookingHandler.Confirm).Methods(http.MethodPost)
	staff.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/rentals/active", rentalHandler.ListActive).Methods(http.MethodGet)
	staff.HandleFunc("/rentals/checkout", rentalHandler.Checkout).Methods(http.MethodPost)
	staff.HandleFunc("/rentals/{id:[0-9]+}", rentalHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/rentals/{id:[0-9]+}/checkin", rentalHandler.Checkin).Methods(http.MethodPost)
	staff.HandleFunc("/rentals/{id:[0-9]+}/invoice", rentalHandler.Invoice).Methods(http.MethodGet)
	staff.HandleFunc("/invoices", invoiceHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/invoices/{id:[0-9]+}", invoiceHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/invoices/rental/{id:[0-9]+}", invoiceHandler.GetByRental).Methods(http.MethodGet)
	staff.HandleFunc("/invoices/{id:[0-9]+}", invoiceHandler.UpdateFees).Methods(http.MethodPut, http.MethodPatch)
	staff.HandleFunc("/invoices/{id:[0-9]+}/payment", invoiceHandler.RecordPayment).Methods(http.MethodPost)
	staff.HandleFunc("/maintenance", maintenanceHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("/maintenance", maintenanceHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/maintenance/{id:[0-9]+}", maintenanceHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/maintenance/{id:[0-9]+}", maintenanceHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	staff.HandleFunc("/reports/fleet", reportHandler.Fleet).Methods(http.MethodGet)
	staff.HandleFunc("/reports/revenue", reportHandler.Revenue).Methods(http.MethodGet)
	staff.HandleFunc("/reports/customers", reportHandler.CustomerActivity).Methods(http.MethodGet)

	// Manager only
	manager := api.NewRoute().Subrouter()
	manager.Use(auth, managerOnly)
	manager.HandleFunc("/customers/{id:[0-9]+}/active", customerHandler.SetActive).Methods(http.MethodPatch)
	manager.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Delete).Methods(http.MethodDelete)
	manager.HandleFunc("/maintenance/{id:[0-9]+}", maintenanceHandler.Delete).Methods(http.MethodDelete)

	return r
}
