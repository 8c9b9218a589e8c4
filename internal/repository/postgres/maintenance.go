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

type maintenanceRepository struct {
	db DBTX
}

func NewMaintenanceRepository(db DBTX) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

// Dates are cast to text so they scan as yyyy-mm-dd strings.
const maintenanceColumns = `id, vehicle_id, maintenance_type, description, start_date::text, end_date::text, status, cost_cents, performed_by, notes, created_on`

func scanMaintenance(row interface{ Scan(...any) error }, m *domain.Maintenance) error {
	return row.Scan(&m.ID, &m.VehicleID, &m.MaintenanceType, &m.Description, &m.StartDate, &m.EndDate,
		&m.Status, &m.CostCents, &m.PerformedBy, &m.Notes, &m.CreatedOn)
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `INSERT INTO maintenance (vehicle_id, maintenance_type, description, start_date, end_date, status, cost_cents, performed_by, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.VehicleID, m.MaintenanceType, m.Description, m.StartDate, m.EndDate,
		m.Status, m.CostCents, m.PerformedBy, m.Notes, time.Now()).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`
	err := scanMaintenance(r.db.QueryRowContext(ctx, query, id), m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("maintenance record %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) List(ctx context.Context, status domain.MaintenanceStatus) ([]domain.Maintenance, error) {
	query := `SELECT m.id, m.vehicle_id, m.maintenance_type, m.description, m.start_date::text, m.end_date::text, m.status,
	                 m.cost_cents, m.performed_by, m.notes, m.created_on,
	                 v.make, v.model, v.registration_number
	          FROM maintenance m
	          JOIN vehicles v ON m.vehicle_id = v.id`
	var args []any
	if status != "" {
		query += " WHERE m.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY m.start_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.MaintenanceType, &m.Description, &m.StartDate, &m.EndDate,
			&m.Status, &m.CostCents, &m.PerformedBy, &m.Notes, &m.CreatedOn,
			&m.VehicleMake, &m.VehicleModel, &m.Registration); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE vehicle_id = $1 ORDER BY start_date DESC`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Maintenance
	for rows.Next() {
		var m domain.Maintenance
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	query := `UPDATE maintenance SET status = $1, end_date = $2, cost_cents = $3, notes = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, m.Status, m.EndDate, m.CostCents, m.Notes, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("maintenance record %d not found", m.ID)
	}
	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("maintenance record %d not found", id)
	}
	return nil
}

func (r *maintenanceRepository) CountActive(ctx context.Context, vehicleID int32, excludeID int32) (int32, error) {
	query := `SELECT COUNT(*) FROM maintenance WHERE vehicle_id = $1 AND status IN ('scheduled', 'in_progress')`
	args := []any{vehicleID}
	if excludeID != 0 {
		query += fmt.Sprintf(" AND id <> $%d", len(args)+1)
		args = append(args, excludeID)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *maintenanceRepository) HasOverlapping(ctx context.Context, vehicleID int32, startDate, endDate string) (bool, error) {
	query := `SELECT COUNT(*) FROM maintenance
	          WHERE vehicle_id = $1
	          AND status IN ('scheduled', 'in_progress')
	          AND start_date <= $3 AND (end_date >= $2 OR end_date IS NULL)`

	var count int32
	if err := r.db.QueryRowContext(ctx, query, vehicleID, startDate, endDate).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
