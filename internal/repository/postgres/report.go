package postgres

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FleetReport(ctx context.Context) (*domain.FleetReport, error) {
	report := &domain.FleetReport{}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM vehicles GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		report.StatusSummary = append(report.StatusSummary, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	catRows, err := r.db.QueryContext(ctx, `SELECT category, status, COUNT(*) FROM vehicles GROUP BY category, status`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var cc domain.CategoryCount
		if err := catRows.Scan(&cc.Category, &cc.Status, &cc.Count); err != nil {
			return nil, err
		}
		report.CategorySummary = append(report.CategorySummary, cc)
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	// Fleet value estimated as a year of rental income per vehicle.
	query := `SELECT COUNT(*), COALESCE(AVG(daily_rate_cents), 0)::bigint, COALESCE(SUM(daily_rate_cents::bigint * 365), 0)
	          FROM vehicles`
	if err := r.db.QueryRowContext(ctx, query).Scan(
		&report.Metrics.TotalVehicles, &report.Metrics.AvgDailyRateCents, &report.Metrics.EstimatedFleetValueCents); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) RevenueReport(ctx context.Context) (*domain.RevenueReport, error) {
	report := &domain.RevenueReport{}

	query := `SELECT to_char(invoice_date, 'YYYY-MM') AS month,
	                 COUNT(*),
	                 COALESCE(SUM(total_amount_cents), 0),
	                 COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount_cents ELSE 0 END), 0),
	                 COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN total_amount_cents ELSE 0 END), 0)
	          FROM invoices
	          GROUP BY to_char(invoice_date, 'YYYY-MM')
	          ORDER BY month`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mr domain.MonthlyRevenue
		if err := rows.Scan(&mr.Month, &mr.InvoiceCount, &mr.TotalAmountCents, &mr.PaidAmountCents, &mr.UnpaidAmountCents); err != nil {
			return nil, err
		}
		report.Monthly = append(report.Monthly, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalsQuery := `SELECT COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total_amount_cents ELSE 0 END), 0),
	                       COALESCE(SUM(CASE WHEN payment_status = 'pending' THEN total_amount_cents ELSE 0 END), 0),
	                       COALESCE(SUM(CASE WHEN payment_status = 'refunded' THEN total_amount_cents ELSE 0 END), 0)
	                FROM invoices`
	if err := r.db.QueryRowContext(ctx, totalsQuery).Scan(
		&report.TotalRevenueCents, &report.OutstandingCents, &report.RefundedAmountCents); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) CustomerActivityReport(ctx context.Context) (*domain.CustomerActivityReport, error) {
	report := &domain.CustomerActivityReport{}

	query := `SELECT c.id, c.first_name, c.last_name, u.email,
	                 COUNT(DISTINCT b.id),
	                 COUNT(DISTINCT r.id),
	                 COALESCE(SUM(CASE WHEN i.payment_status = 'paid' THEN i.total_amount_cents ELSE 0 END), 0)
	          FROM customers c
	          JOIN users u ON c.user_id = u.id
	          LEFT JOIN bookings b ON c.id = b.customer_id
	          LEFT JOIN rentals r ON b.id = r.booking_id AND r.status = 'completed'
	          LEFT JOIN invoices i ON r.id = i.rental_id
	          GROUP BY c.id, c.first_name, c.last_name, u.email
	          ORDER BY COUNT(DISTINCT b.id) DESC
	          LIMIT 20`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var fr domain.FrequentRenter
		if err := rows.Scan(&fr.CustomerID, &fr.FirstName, &fr.LastName, &fr.Email,
			&fr.TotalBookings, &fr.CompletedRentals, &fr.TotalRevenueCents); err != nil {
			return nil, err
		}
		report.FrequentRenters = append(report.FrequentRenters, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	overdue, err := r.OverdueReturns(ctx)
	if err != nil {
		return nil, err
	}
	report.OverdueReturns = overdue

	return report, nil
}

// OverdueReturns is a projection only: nothing in the system transitions a
// rental based on this query.
func (r *reportRepository) OverdueReturns(ctx context.Context) ([]domain.OverdueReturn, error) {
	query := `SELECT r.id, b.id, b.end_date::text, (CURRENT_DATE - b.end_date),
	                 c.first_name || ' ' || c.last_name, u.email,
	                 v.make, v.model, v.registration_number
	          FROM rentals r
	          JOIN bookings b ON r.booking_id = b.id
	          JOIN customers c ON b.customer_id = c.id
	          JOIN users u ON c.user_id = u.id
	          JOIN vehicles v ON b.vehicle_id = v.id
	          WHERE r.status = 'active' AND b.end_date < CURRENT_DATE
	          ORDER BY b.end_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []domain.OverdueReturn
	for rows.Next() {
		var o domain.OverdueReturn
		if err := rows.Scan(&o.RentalID, &o.BookingID, &o.ExpectedReturnDate, &o.DaysOverdue,
			&o.CustomerName, &o.CustomerEmail, &o.VehicleMake, &o.VehicleModel, &o.Registration); err != nil {
			return nil, err
		}
		overdue = append(overdue, o)
	}
	return overdue, rows.Err()
}
