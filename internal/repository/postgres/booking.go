package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// Dates are cast to text so they scan as yyyy-mm-dd strings.
const bookingColumns = `id, code, customer_id, vehicle_id, start_date::text, end_date::text, pickup_location, dropoff_location, total_amount_cents, status, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Code, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate,
		&b.PickupLocation, &b.DropoffLocation, &b.TotalAmountCents, &b.Status, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (code, customer_id, vehicle_id, start_date, end_date, pickup_location, dropoff_location, total_amount_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query, b.Code, b.CustomerID, b.VehicleID, b.StartDate, b.EndDate,
		b.PickupLocation, b.DropoffLocation, b.TotalAmountCents, b.Status, time.Now(), time.Now()).
		Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if isUniqueViolation(err) {
		return domain.NewConflictError("booking code %s already exists", b.Code)
	}
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("booking %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("booking %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT b.id, b.code, b.customer_id, b.vehicle_id, b.start_date::text, b.end_date::text, b.pickup_location, b.dropoff_location,
	                 b.total_amount_cents, b.status, b.created_on, b.updated_on,
	                 c.first_name || ' ' || c.last_name, v.make, v.model, v.registration_number
	          FROM bookings b
	          JOIN customers c ON b.customer_id = c.id
	          JOIN vehicles v ON b.vehicle_id = v.id`
	var args []any
	if status != "" {
		query += " WHERE b.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY b.created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Code, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate,
			&b.PickupLocation, &b.DropoffLocation, &b.TotalAmountCents, &b.Status, &b.CreatedOn, &b.UpdatedOn,
			&b.CustomerName, &b.VehicleMake, &b.VehicleModel, &b.Registration); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	query := `SELECT b.id, b.code, b.customer_id, b.vehicle_id, b.start_date::text, b.end_date::text, b.pickup_location, b.dropoff_location,
	                 b.total_amount_cents, b.status, b.created_on, b.updated_on,
	                 c.first_name || ' ' || c.last_name, v.make, v.model, v.registration_number
	          FROM bookings b
	          JOIN customers c ON b.customer_id = c.id
	          JOIN vehicles v ON b.vehicle_id = v.id
	          WHERE b.customer_id = $1
	          ORDER BY b.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Code, &b.CustomerID, &b.VehicleID, &b.StartDate, &b.EndDate,
			&b.PickupLocation, &b.DropoffLocation, &b.TotalAmountCents, &b.Status, &b.CreatedOn, &b.UpdatedOn,
			&b.CustomerName, &b.VehicleMake, &b.VehicleModel, &b.Registration); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET vehicle_id = $1, start_date = $2, end_date = $3, pickup_location = $4,
	          dropoff_location = $5, total_amount_cents = $6, status = $7, updated_on = $8 WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query, b.VehicleID, b.StartDate, b.EndDate, b.PickupLocation,
		b.DropoffLocation, b.TotalAmountCents, b.Status, time.Now(), b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("booking %d not found", b.ID)
	}
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("booking %d not found", id)
	}
	return nil
}

// HasOverlapping uses the inclusive-inclusive overlap predicate: a shared
// boundary day counts as a conflict.
func (r *bookingRepository) HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string, excludeID int32) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE vehicle_id = $1
	          AND status IN ('pending', 'confirmed')
	          AND start_date <= $3 AND end_date >= $2`
	args := []any{vehicleID, startDate, endDate}
	if excludeID != 0 {
		query += fmt.Sprintf(" AND id <> $%d", len(args)+1)
		args = append(args, excludeID)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
