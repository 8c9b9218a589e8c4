package domain

// Read-only reporting projections. These carry no invariants beyond the
// correctness of the SQL that fills them.

type StatusCount struct {
	Status string `json:"status"`
	Count  int32  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Count    int32  `json:"count"`
}

type FleetMetrics struct {
	TotalVehicles            int32 `json:"total_vehicles"`
	AvgDailyRateCents        int64 `json:"avg_daily_rate_cents"`
	EstimatedFleetValueCents int64 `json:"estimated_fleet_value_cents"`
}

type FleetReport struct {
	StatusSummary   []StatusCount   `json:"status_summary"`
	CategorySummary []CategoryCount `json:"category_summary"`
	Metrics         FleetMetrics    `json:"metrics"`
}

type MonthlyRevenue struct {
	Month             string `json:"month"`
	InvoiceCount      int32  `json:"invoice_count"`
	TotalAmountCents  int64  `json:"total_amount_cents"`
	PaidAmountCents   int64  `json:"paid_amount_cents"`
	UnpaidAmountCents int64  `json:"unpaid_amount_cents"`
}

type RevenueReport struct {
	Monthly             []MonthlyRevenue `json:"monthly"`
	TotalRevenueCents   int64            `json:"total_revenue_cents"`
	OutstandingCents    int64            `json:"outstanding_cents"`
	RefundedAmountCents int64            `json:"refunded_amount_cents"`
}

type FrequentRenter struct {
	CustomerID        int32  `json:"customer_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	TotalBookings     int32  `json:"total_bookings"`
	CompletedRentals  int32  `json:"completed_rentals"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
}

type OverdueReturn struct {
	RentalID           int32  `json:"rental_id"`
	BookingID          int32  `json:"booking_id"`
	ExpectedReturnDate string `json:"expected_return_date"`
	DaysOverdue        int32  `json:"days_overdue"`
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	VehicleMake        string `json:"vehicle_make"`
	VehicleModel       string `json:"vehicle_model"`
	Registration       string `json:"registration_number"`
}

type CustomerActivityReport struct {
	FrequentRenters []FrequentRenter `json:"frequent_renters"`
	OverdueReturns  []OverdueReturn  `json:"overdue_returns"`
}
