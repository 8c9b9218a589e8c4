package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type invoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, rental_id, rental_days, base_amount_cents, late_fee_cents, damage_fee_cents, other_charges_cents,
	tax_amount_cents, total_amount_cents, payment_status, payment_method, notes, invoice_date`

func scanInvoice(row interface{ Scan(...any) error }, inv *domain.Invoice) error {
	return row.Scan(&inv.ID, &inv.RentalID, &inv.RentalDays, &inv.BaseAmountCents, &inv.LateFeeCents,
		&inv.DamageFeeCents, &inv.OtherChargesCents, &inv.TaxAmountCents, &inv.TotalAmountCents,
		&inv.PaymentStatus, &inv.PaymentMethod, &inv.Notes, &inv.InvoiceDate)
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (rental_id, rental_days, base_amount_cents, late_fee_cents, damage_fee_cents, other_charges_cents,
	          tax_amount_cents, total_amount_cents, payment_status, payment_method, notes, invoice_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, inv.RentalID, inv.RentalDays, inv.BaseAmountCents, inv.LateFeeCents,
		inv.DamageFeeCents, inv.OtherChargesCents, inv.TaxAmountCents, inv.TotalAmountCents,
		inv.PaymentStatus, inv.PaymentMethod, inv.Notes, time.Now()).Scan(&inv.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("an invoice already exists for rental %d", inv.RentalID)
	}
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	err := scanInvoice(r.db.QueryRowContext(ctx, query, id), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("invoice %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) GetByRentalID(ctx context.Context, rentalID int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE rental_id = $1`
	err := scanInvoice(r.db.QueryRowContext(ctx, query, rentalID), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("invoice for rental %d not found", rentalID)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, paymentStatus domain.PaymentStatus) ([]domain.Invoice, error) {
	query := `SELECT i.id, i.rental_id, i.rental_days, i.base_amount_cents, i.late_fee_cents, i.damage_fee_cents, i.other_charges_cents,
	                 i.tax_amount_cents, i.total_amount_cents, i.payment_status, i.payment_method, i.notes, i.invoice_date,
	                 c.first_name || ' ' || c.last_name, v.make, v.model, v.registration_number
	          FROM invoices i
	          JOIN rentals r ON i.rental_id = r.id
	          JOIN bookings b ON r.booking_id = b.id
	          JOIN customers c ON b.customer_id = c.id
	          JOIN vehicles v ON b.vehicle_id = v.id`
	var args []any
	if paymentStatus != "" {
		query += " WHERE i.payment_status = $1"
		args = append(args, paymentStatus)
	}
	query += " ORDER BY i.invoice_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.RentalID, &inv.RentalDays, &inv.BaseAmountCents, &inv.LateFeeCents,
			&inv.DamageFeeCents, &inv.OtherChargesCents, &inv.TaxAmountCents, &inv.TotalAmountCents,
			&inv.PaymentStatus, &inv.PaymentMethod, &inv.Notes, &inv.InvoiceDate,
			&inv.CustomerName, &inv.VehicleMake, &inv.VehicleModel, &inv.Registration); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateFees writes the fee fields and the recomputed total. Base amount
// and tax are deliberately not in the statement; they never change after
// the invoice is created.
func (r *invoiceRepository) UpdateFees(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET late_fee_cents = $1, damage_fee_cents = $2, other_charges_cents = $3,
	          total_amount_cents = $4, notes = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, inv.LateFeeCents, inv.DamageFeeCents, inv.OtherChargesCents,
		inv.TotalAmountCents, inv.Notes, inv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("invoice %d not found", inv.ID)
	}
	return nil
}

func (r *invoiceRepository) UpdatePayment(ctx context.Context, id int32, status domain.PaymentStatus, method string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE invoices SET payment_status = $1, payment_method = $2 WHERE id = $3`, status, method, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("invoice %d not found", id)
	}
	return nil
}
