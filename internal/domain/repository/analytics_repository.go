package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DebtCustomerResult is a customer ranked by outstanding debt
type DebtCustomerResult struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	TotalDebt    int64     `json:"total_debt"`
	InvoiceCount int64     `json:"invoice_count"`
}

// MonthlyRevenueResult is the revenue for one calendar month
type MonthlyRevenueResult struct {
	Month   time.Time `json:"month"`
	Revenue int64     `json:"revenue"`
}

// AnalyticsRepository exposes the aggregation queries behind the dashboard
type AnalyticsRepository interface {
	GetTotalRevenue(ctx context.Context) (int64, error)
	// GetRevenueSince sums invoice totals with invoice_date >= the given time.
	GetRevenueSince(ctx context.Context, since time.Time) (int64, error)
	GetTotalDebt(ctx context.Context) (int64, error)
	// GetTopDebtCustomers ranks customers by the sum of their debt invoices.
	GetTopDebtCustomers(ctx context.Context, limit int) ([]DebtCustomerResult, error)
	// GetRevenueByMonth returns per-month revenue for the last N months.
	GetRevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenueResult, error)
}
