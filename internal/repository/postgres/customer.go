package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (user_id, first_name, last_name, phone, address, drivers_license, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.UserID, c.FirstName, c.LastName, c.Phone, c.Address, c.DriversLicense, time.Now()).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.address, c.drivers_license, c.created_on, u.email, u.is_active
	          FROM customers c JOIN users u ON c.user_id = u.id WHERE c.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Address, &c.DriversLicense, &c.CreatedOn, &c.Email, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("customer %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.address, c.drivers_license, c.created_on, u.email, u.is_active
	          FROM customers c JOIN users u ON c.user_id = u.id WHERE c.user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Address, &c.DriversLicense, &c.CreatedOn, &c.Email, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("customer profile for user %d not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT c.id, c.user_id, c.first_name, c.last_name, c.phone, c.address, c.drivers_license, c.created_on, u.email, u.is_active
	          FROM customers c JOIN users u ON c.user_id = u.id ORDER BY c.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Phone, &c.Address, &c.DriversLicense, &c.CreatedOn, &c.Email, &c.IsActive); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET first_name = $1, last_name = $2, phone = $3, address = $4, drivers_license = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Address, c.DriversLicense, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("customer %d not found", c.ID)
	}
	return nil
}
