package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backend/internal/repository"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves both pooled and transaction-scoped access.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil for transaction-scoped stores

	users       repository.UserRepository
	customers   repository.CustomerRepository
	vehicles    repository.VehicleRepository
	bookings    repository.BookingRepository
	rentals     repository.RentalRepository
	invoices    repository.InvoiceRepository
	maintenance repository.MaintenanceRepository
	reports     repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:          db,
		users:       NewUserRepository(q),
		customers:   NewCustomerRepository(q),
		vehicles:    NewVehicleRepository(q),
		bookings:    NewBookingRepository(q),
		rentals:     NewRentalRepository(q),
		invoices:    NewInvoiceRepository(q),
		maintenance: NewMaintenanceRepository(q),
		reports:     NewReportRepository(q),
	}
}

func (s *Store) Users() repository.UserRepository               { return s.users }
func (s *Store) Customers() repository.CustomerRepository       { return s.customers }
func (s *Store) Vehicles() repository.VehicleRepository         { return s.vehicles }
func (s *Store) Bookings() repository.BookingRepository         { return s.bookings }
func (s *Store) Rentals() repository.RentalRepository           { return s.rentals }
func (s *Store) Invoices() repository.InvoiceRepository         { return s.invoices }
func (s *Store) Maintenance() repository.MaintenanceRepository  { return s.maintenance }
func (s *Store) Reports() repository.ReportRepository           { return s.reports }

// WithinTx runs fn against a store bound to a single transaction. Nested
// calls reuse the surrounding transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := newStore(nil, tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
