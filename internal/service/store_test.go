package service_test

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

// fakeStore is an in-memory repository.Store for exercising the workflow
// layer without a database. WithinTx runs the callback against the same
// store; rollback is not simulated, so tests assert on outcomes rather than
// on intermediate state.
type fakeStore struct {
	users       map[int32]*domain.User
	customers   map[int32]*domain.Customer
	vehicles    map[int32]*domain.Vehicle
	bookings    map[int32]*domain.Booking
	rentals     map[int32]*domain.Rental
	invoices    map[int32]*domain.Invoice
	maintenance map[int32]*domain.Maintenance
	nextID      int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int32]*domain.User),
		customers:   make(map[int32]*domain.Customer),
		vehicles:    make(map[int32]*domain.Vehicle),
		bookings:    make(map[int32]*domain.Booking),
		rentals:     make(map[int32]*domain.Rental),
		invoices:    make(map[int32]*domain.Invoice),
		maintenance: make(map[int32]*domain.Maintenance),
	}
}

func (f *fakeStore) id() int32 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Users() repository.UserRepository              { return &fakeUsers{f} }
func (f *fakeStore) Customers() repository.CustomerRepository      { return &fakeCustomers{f} }
func (f *fakeStore) Vehicles() repository.VehicleRepository        { return &fakeVehicles{f} }
func (f *fakeStore) Bookings() repository.BookingRepository        { return &fakeBookings{f} }
func (f *fakeStore) Rentals() repository.RentalRepository          { return &fakeRentals{f} }
func (f *fakeStore) Invoices() repository.InvoiceRepository        { return &fakeInvoices{f} }
func (f *fakeStore) Maintenance() repository.MaintenanceRepository { return &fakeMaintenance{f} }
func (f *fakeStore) Reports() repository.ReportRepository          { return &fakeReports{f} }

func (f *fakeStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(f)
}

// Seed helpers

func (f *fakeStore) addVehicle(rateCents int32, status domain.VehicleStatus) *domain.Vehicle {
	v := &domain.Vehicle{
		ID:                 f.id(),
		RegistrationNumber: "REG-" + time.Now().Format("150405.000000000"),
		Make:               "Toyota",
		Model:              "Corolla",
		Category:           "sedan",
		Mileage:            10000,
		DailyRateCents:     rateCents,
		Status:             status,
		CreatedOn:          time.Now(),
	}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeStore) addCustomer() *domain.Customer {
	u := &domain.User{ID: f.id(), Email: "cust@example.com", Role: domain.UserRoleCustomer, IsActive: true}
	f.users[u.ID] = u
	active := true
	c := &domain.Customer{ID: f.id(), UserID: u.ID, FirstName: "Ada", LastName: "Lovelace",
		Email: u.Email, IsActive: &active}
	f.customers[c.ID] = c
	return c
}

type fakeUsers struct{ s *fakeStore }

func (r *fakeUsers) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.NewConflictError("email %s is already registered", user.Email)
		}
	}
	user.ID = r.s.id()
	user.CreatedOn = time.Now()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUsers) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user %d not found", id)
	}
	return u, nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user with email %s not found", email)
}

func (r *fakeUsers) SetActive(ctx context.Context, id int32, active bool) error {
	u, ok := r.s.users[id]
	if !ok {
		return domain.NewNotFoundError("user %d not found", id)
	}
	u.IsActive = active
	return nil
}

type fakeCustomers struct{ s *fakeStore }

func (r *fakeCustomers) Create(ctx context.Context, customer *domain.Customer) error {
	customer.ID = r.s.id()
	customer.CreatedOn = time.Now()
	r.s.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomers) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domain.NewNotFoundError("customer %d not found", id)
	}
	return c, nil
}

func (r *fakeCustomers) GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error) {
	for _, c := range r.s.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, domain.NewNotFoundError("customer profile for user %d not found", userID)
}

func (r *fakeCustomers) List(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range r.s.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomers) Update(ctx context.Context, customer *domain.Customer) error {
	if _, ok := r.s.customers[customer.ID]; !ok {
		return domain.NewNotFoundError("customer %d not found", customer.ID)
	}
	r.s.customers[customer.ID] = customer
	return nil
}

type fakeVehicles struct{ s *fakeStore }

func (r *fakeVehicles) Create(ctx context.Context, v *domain.Vehicle) error {
	for _, existing := range r.s.vehicles {
		if existing.RegistrationNumber == v.RegistrationNumber {
			return domain.NewConflictError("vehicle with registration number %s already exists", v.RegistrationNumber)
		}
	}
	v.ID = r.s.id()
	v.CreatedOn = time.Now()
	r.s.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicles) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, domain.NewNotFoundError("vehicle %d not found", id)
	}
	return v, nil
}

func (r *fakeVehicles) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVehicles) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range r.s.vehicles {
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVehicles) Update(ctx context.Context, v *domain.Vehicle) error {
	if _, ok := r.s.vehicles[v.ID]; !ok {
		return domain.NewNotFoundError("vehicle %d not found", v.ID)
	}
	r.s.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicles) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	v, ok := r.s.vehicles[id]
	if !ok {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	v.Status = status
	return nil
}

func (r *fakeVehicles) UpdateStatusAndMileage(ctx context.Context, id int32, status domain.VehicleStatus, mileage int32) error {
	v, ok := r.s.vehicles[id]
	if !ok {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	v.Status = status
	v.Mileage = mileage
	return nil
}

func (r *fakeVehicles) Delete(ctx context.Context, id int32) error {
	if _, ok := r.s.vehicles[id]; !ok {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	delete(r.s.vehicles, id)
	return nil
}

func (r *fakeVehicles) SearchAvailable(ctx context.Context, startDate, endDate, category string) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range r.s.vehicles {
		if v.Status != domain.VehicleStatusAvailable {
			continue
		}
		if category != "" && v.Category != category {
			continue
		}
		conflict, err := r.s.Bookings().HasOverlapping(ctx, v.ID, startDate, endDate, 0)
		if err != nil {
			return nil, err
		}
		if !conflict {
			conflict, err = r.s.Maintenance().HasOverlapping(ctx, v.ID, startDate, endDate)
			if err != nil {
				return nil, err
			}
		}
		if !conflict {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakeBookings struct{ s *fakeStore }

func (r *fakeBookings) Create(ctx context.Context, b *domain.Booking) error {
	b.ID = r.s.id()
	b.CreatedOn = time.Now()
	b.UpdatedOn = b.CreatedOn
	r.s.bookings[b.ID] = b
	return nil
}

func (r *fakeBookings) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking %d not found", id)
	}
	return b, nil
}

func (r *fakeBookings) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBookings) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookings) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.s.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookings) Update(ctx context.Context, b *domain.Booking) error {
	if _, ok := r.s.bookings[b.ID]; !ok {
		return domain.NewNotFoundError("booking %d not found", b.ID)
	}
	b.UpdatedOn = time.Now()
	r.s.bookings[b.ID] = b
	return nil
}

func (r *fakeBookings) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return domain.NewNotFoundError("booking %d not found", id)
	}
	b.Status = status
	b.UpdatedOn = time.Now()
	return nil
}

func (r *fakeBookings) HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string, excludeID int32) (bool, error) {
	for _, b := range r.s.bookings {
		if b.VehicleID != vehicleID || b.ID == excludeID {
			continue
		}
		if b.Status != domain.BookingStatusPending && b.Status != domain.BookingStatusConfirmed {
			continue
		}
		overlap, err := utils.DatesOverlap(startDate, endDate, b.StartDate, b.EndDate)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}

type fakeRentals struct{ s *fakeStore }

func (r *fakeRentals) Create(ctx context.Context, rt *domain.Rental) error {
	for _, existing := range r.s.rentals {
		if existing.BookingID == rt.BookingID {
			return domain.NewConflictError("a rental already exists for booking %d", rt.BookingID)
		}
	}
	rt.ID = r.s.id()
	rt.CreatedOn = time.Now()
	rt.UpdatedOn = rt.CreatedOn
	r.s.rentals[rt.ID] = rt
	return nil
}

func (r *fakeRentals) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt, ok := r.s.rentals[id]
	if !ok {
		return nil, domain.NewNotFoundError("rental %d not found", id)
	}
	return rt, nil
}

func (r *fakeRentals) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRentals) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error) {
	for _, rt := range r.s.rentals {
		if rt.BookingID == bookingID {
			return rt, nil
		}
	}
	return nil, domain.NewNotFoundError("rental for booking %d not found", bookingID)
}

func (r *fakeRentals) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rt := range r.s.rentals {
		if status == "" || rt.Status == status {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *fakeRentals) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rt := range r.s.rentals {
		if b, ok := r.s.bookings[rt.BookingID]; ok && b.CustomerID == customerID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *fakeRentals) Update(ctx context.Context, rt *domain.Rental) error {
	if _, ok := r.s.rentals[rt.ID]; !ok {
		return domain.NewNotFoundError("rental %d not found", rt.ID)
	}
	rt.UpdatedOn = time.Now()
	r.s.rentals[rt.ID] = rt
	return nil
}

type fakeInvoices struct{ s *fakeStore }

func (r *fakeInvoices) Create(ctx context.Context, inv *domain.Invoice) error {
	for _, existing := range r.s.invoices {
		if existing.RentalID == inv.RentalID {
			return domain.NewConflictError("an invoice already exists for rental %d", inv.RentalID)
		}
	}
	inv.ID = r.s.id()
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoices) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, domain.NewNotFoundError("invoice %d not found", id)
	}
	return inv, nil
}

func (r *fakeInvoices) GetByRentalID(ctx context.Context, rentalID int32) (*domain.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.RentalID == rentalID {
			return inv, nil
		}
	}
	return nil, domain.NewNotFoundError("invoice for rental %d not found", rentalID)
}

func (r *fakeInvoices) List(ctx context.Context, paymentStatus domain.PaymentStatus) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range r.s.invoices {
		if paymentStatus == "" || inv.PaymentStatus == paymentStatus {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoices) UpdateFees(ctx context.Context, inv *domain.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.NewNotFoundError("invoice %d not found", inv.ID)
	}
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoices) UpdatePayment(ctx context.Context, id int32, status domain.PaymentStatus, method string) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.NewNotFoundError("invoice %d not found", id)
	}
	inv.PaymentStatus = status
	inv.PaymentMethod = method
	return nil
}

type fakeMaintenance struct{ s *fakeStore }

func (r *fakeMaintenance) Create(ctx context.Context, m *domain.Maintenance) error {
	m.ID = r.s.id()
	m.CreatedOn = time.Now()
	r.s.maintenance[m.ID] = m
	return nil
}

func (r *fakeMaintenance) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	m, ok := r.s.maintenance[id]
	if !ok {
		return nil, domain.NewNotFoundError("maintenance record %d not found", id)
	}
	return m, nil
}

func (r *fakeMaintenance) List(ctx context.Context, status domain.MaintenanceStatus) ([]domain.Maintenance, error) {
	var out []domain.Maintenance
	for _, m := range r.s.maintenance {
		if status == "" || m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMaintenance) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error) {
	var out []domain.Maintenance
	for _, m := range r.s.maintenance {
		if m.VehicleID == vehicleID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMaintenance) Update(ctx context.Context, m *domain.Maintenance) error {
	if _, ok := r.s.maintenance[m.ID]; !ok {
		return domain.NewNotFoundError("maintenance record %d not found", m.ID)
	}
	r.s.maintenance[m.ID] = m
	return nil
}

func (r *fakeMaintenance) Delete(ctx context.Context, id int32) error {
	if _, ok := r.s.maintenance[id]; !ok {
		return domain.NewNotFoundError("maintenance record %d not found", id)
	}
	delete(r.s.maintenance, id)
	return nil
}

func (r *fakeMaintenance) CountActive(ctx context.Context, vehicleID int32, excludeID int32) (int32, error) {
	var count int32
	for _, m := range r.s.maintenance {
		if m.VehicleID == vehicleID && m.ID != excludeID && m.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *fakeMaintenance) HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (bool, error) {
	for _, m := range r.s.maintenance {
		if m.VehicleID != vehicleID || !m.Status.Active() {
			continue
		}
		end := ""
		if m.EndDate != nil {
			end = *m.EndDate
		}
		overlap, err := utils.DatesOverlap(startDate, endDate, m.StartDate, end)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}

type fakeReports struct{ s *fakeStore }

func (r *fakeReports) FleetReport(ctx context.Context) (*domain.FleetReport, error) {
	return &domain.FleetReport{}, nil
}

func (r *fakeReports) RevenueReport(ctx context.Context) (*domain.RevenueReport, error) {
	return &domain.RevenueReport{}, nil
}

func (r *fakeReports) CustomerActivityReport(ctx context.Context) (*domain.CustomerActivityReport, error) {
	return &domain.CustomerActivityReport{}, nil
}

func (r *fakeReports) OverdueReturns(ctx context.Context) ([]domain.OverdueReturn, error) {
	return nil, nil
}

// noopEmail satisfies the email dependency without sending anything.
type noopEmail struct{}

func (noopEmail) SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking) error {
	return nil
}

func (noopEmail) SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking) error {
	return nil
}

func (noopEmail) SendInvoiceReceipt(ctx context.Context, email, name string, invoice *domain.Invoice) error {
	return nil
}

func (noopEmail) SendOverdueReminder(ctx context.Context, email, name string, overdue *domain.OverdueReturn) error {
	return nil
}
