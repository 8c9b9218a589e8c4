package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, booking_id, checkout_date, checkout_mileage, checkout_staff_id, fuel_level_out, condition_notes_out,
	checkin_date, checkin_mileage, checkin_staff_id, fuel_level_in, condition_notes_in, status, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.BookingID, &rt.CheckoutDate, &rt.CheckoutMileage, &rt.CheckoutStaffID,
		&rt.FuelLevelOut, &rt.ConditionNotesOut, &rt.CheckinDate, &rt.CheckinMileage, &rt.CheckinStaffID,
		&rt.FuelLevelIn, &rt.ConditionNotesIn, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (booking_id, checkout_date, checkout_mileage, checkout_staff_id, fuel_level_out, condition_notes_out, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.BookingID, rt.CheckoutDate, rt.CheckoutMileage, rt.CheckoutStaffID,
		rt.FuelLevelOut, rt.ConditionNotesOut, rt.Status, time.Now(), time.Now()).Scan(&rt.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("a rental already exists for booking %d", rt.BookingID)
	}
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE booking_id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, bookingID), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental for booking %d not found", bookingID)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

const rentalJoinedColumns = `r.id, r.booking_id, r.checkout_date, r.checkout_mileage, r.checkout_staff_id, r.fuel_level_out, r.condition_notes_out,
	r.checkin_date, r.checkin_mileage, r.checkin_staff_id, r.fuel_level_in, r.condition_notes_in, r.status, r.created_on, r.updated_on,
	b.customer_id, b.vehicle_id, b.start_date::text, b.end_date::text,
	c.first_name || ' ' || c.last_name, v.make, v.model, v.registration_number`

func scanJoinedRental(row interface{ Scan(...any) error }, rt *domain.Rental) error {
	return row.Scan(&rt.ID, &rt.BookingID, &rt.CheckoutDate, &rt.CheckoutMileage, &rt.CheckoutStaffID,
		&rt.FuelLevelOut, &rt.ConditionNotesOut, &rt.CheckinDate, &rt.CheckinMileage, &rt.CheckinStaffID,
		&rt.FuelLevelIn, &rt.ConditionNotesIn, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn,
		&rt.CustomerID, &rt.VehicleID, &rt.StartDate, &rt.EndDate,
		&rt.CustomerName, &rt.VehicleMake, &rt.VehicleModel, &rt.Registration)
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalJoinedColumns + `
	          FROM rentals r
	          JOIN bookings b ON r.booking_id = b.id
	          JOIN customers c ON b.customer_id = c.id
	          JOIN vehicles v ON b.vehicle_id = v.id`
	var args []any
	if status != "" {
		query += " WHERE r.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY r.checkout_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanJoinedRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalJoinedColumns + `
	          FROM rentals r
	          JOIN bookings b ON r.booking_id = b.id
	          JOIN customers c ON b.customer_id = c.id
	          JOIN vehicles v ON b.vehicle_id = v.id
	          WHERE b.customer_id = $1
	          ORDER BY r.checkout_date DESC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanJoinedRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET checkin_date = $1, checkin_mileage = $2, checkin_staff_id = $3, fuel_level_in = $4,
	          condition_notes_in = $5, status = $6, updated_on = $7 WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query, rt.CheckinDate, rt.CheckinMileage, rt.CheckinStaffID,
		rt.FuelLevelIn, rt.ConditionNotesIn, rt.Status, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("rental %d not found", rt.ID)
	}
	return nil
}
