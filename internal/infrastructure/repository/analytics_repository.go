package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	domainRepo "github.com/thienxuan/dienmay-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
	`).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetRevenueSince(ctx context.Context, since time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE invoice_date >= ?
	`, since).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetTotalDebt(ctx context.Context) (int64, error) {
	var debt int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE status = ?
	`, int(enum.InvoiceStatusDebt)).Scan(&debt).Error

	return debt, err
}

func (r *analyticsRepository) GetTopDebtCustomers(ctx context.Context, limit int) ([]domainRepo.DebtCustomerResult, error) {
	var results []domainRepo.DebtCustomerResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id as customer_id,
			c.name as customer_name,
			COALESCE(SUM(i.total_amount), 0) as total_debt,
			COUNT(i.id) as invoice_count
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.status = ?
		GROUP BY c.id, c.name
		ORDER BY total_debt DESC
		LIMIT ?
	`, int(enum.InvoiceStatusDebt), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetRevenueByMonth(ctx context.Context, months int) ([]domainRepo.MonthlyRevenueResult, error) {
	results := make([]domainRepo.MonthlyRevenueResult, 0, months)
	now := time.Now()

	// One range query per bucket keeps the SQL portable across drivers
	for i := months - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var revenue sql.NullInt64
		err := r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(total_amount), 0)
			FROM invoices
			WHERE invoice_date >= ? AND invoice_date < ?
		`, start, end).Scan(&revenue).Error

		if err != nil {
			return nil, err
		}

		var rev int64
		if revenue.Valid {
			rev = revenue.Int64
		}

		results = append(results, domainRepo.MonthlyRevenueResult{
			Month:   start,
			Revenue: rev,
		})
	}

	return results, nil
}
