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

type vehicleRepository struct {
	db DBTX
}

func NewVehicleRepository(db DBTX) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, registration_number, make, model, year, category, color, seats, mileage, daily_rate_cents, status, image_url, created_on`

func scanVehicle(row interface{ Scan(...any) error }, v *domain.Vehicle) error {
	return row.Scan(&v.ID, &v.RegistrationNumber, &v.Make, &v.Model, &v.Year, &v.Category,
		&v.Color, &v.Seats, &v.Mileage, &v.DailyRateCents, &v.Status, &v.ImageURL, &v.CreatedOn)
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (registration_number, make, model, year, category, color, seats, mileage, daily_rate_cents, status, image_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, v.RegistrationNumber, v.Make, v.Model, v.Year, v.Category,
		v.Color, v.Seats, v.Mileage, v.DailyRateCents, v.Status, v.ImageURL, time.Now()).Scan(&v.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("vehicle with registration number %s already exists", v.RegistrationNumber)
	}
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := scanVehicle(r.db.QueryRowContext(ctx, query, id), v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("vehicle %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	err := scanVehicle(r.db.QueryRowContext(ctx, query, id), v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("vehicle %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	var args []any
	argIdx := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.MinRateCents > 0 {
		query += fmt.Sprintf(" AND daily_rate_cents >= $%d", argIdx)
		args = append(args, filter.MinRateCents)
		argIdx++
	}
	if filter.MaxRateCents > 0 {
		query += fmt.Sprintf(" AND daily_rate_cents <= $%d", argIdx)
		args = append(args, filter.MaxRateCents)
		argIdx++
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET registration_number = $1, make = $2, model = $3, year = $4, category = $5,
	          color = $6, seats = $7, mileage = $8, daily_rate_cents = $9, image_url = $10 WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query, v.RegistrationNumber, v.Make, v.Model, v.Year, v.Category,
		v.Color, v.Seats, v.Mileage, v.DailyRateCents, v.ImageURL, v.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("vehicle with registration number %s already exists", v.RegistrationNumber)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("vehicle %d not found", v.ID)
	}
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	return nil
}

func (r *vehicleRepository) UpdateStatusAndMileage(ctx context.Context, id int32, status domain.VehicleStatus, mileage int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status = $1, mileage = $2 WHERE id = $3`, status, mileage, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("vehicle %d not found", id)
	}
	return nil
}

// SearchAvailable excludes vehicles whose status is not available, plus any
// vehicle with a pending/confirmed booking or an active maintenance window
// overlapping the inclusive range. Open-ended maintenance (null end_date)
// conflicts with everything from its start date onward.
func (r *vehicleRepository) SearchAvailable(ctx context.Context, startDate, endDate, category string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles v
	          WHERE v.status = 'available'
	          AND v.id NOT IN (
	              SELECT vehicle_id FROM bookings
	              WHERE status IN ('pending', 'confirmed')
	              AND start_date <= $2 AND end_date >= $1
	          )
	          AND v.id NOT IN (
	              SELECT vehicle_id FROM maintenance
	              WHERE status IN ('scheduled', 'in_progress')
	              AND start_date <= $2 AND (end_date >= $1 OR end_date IS NULL)
	          )`
	args := []any{startDate, endDate}
	if category != "" {
		query += " AND v.category = $3"
		args = append(args, category)
	}
	query += " ORDER BY v.daily_rate_cents"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
