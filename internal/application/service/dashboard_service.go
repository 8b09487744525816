package service

import (
	"context"
	"time"

	"github.com/thienxuan/dienmay-api/internal/domain/repository"
)

// DashboardService aggregates business metrics for the dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// DashboardSummary is the aggregate view returned to the dashboard
type DashboardSummary struct {
	TotalCustomers   int64                             `json:"total_customers"`
	TotalProducts    int64                             `json:"total_products"`
	TotalInvoices    int64                             `json:"total_invoices"`
	TotalRevenue     int64                             `json:"total_revenue"`
	RevenueThisMonth int64                             `json:"revenue_this_month"`
	TotalDebt        int64                             `json:"total_debt"`
	TopDebtCustomers []repository.DebtCustomerResult   `json:"top_debt_customers"`
	MonthlyRevenue   []repository.MonthlyRevenueResult `json:"monthly_revenue"`
}

const (
	topDebtCustomerLimit = 5
	revenueHistoryMonths = 12
)

// GetSummary collects entity counts, revenue and debt aggregates, the top
// debtors and a 12-month revenue series.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalInvoices, err = s.invoiceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalRevenue, err = s.analyticsRepo.GetTotalRevenue(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if summary.RevenueThisMonth, err = s.analyticsRepo.GetRevenueSince(ctx, monthStart); err != nil {
		return nil, err
	}

	if summary.TotalDebt, err = s.analyticsRepo.GetTotalDebt(ctx); err != nil {
		return nil, err
	}
	if summary.TopDebtCustomers, err = s.analyticsRepo.GetTopDebtCustomers(ctx, topDebtCustomerLimit); err != nil {
		return nil, err
	}
	if summary.MonthlyRevenue, err = s.analyticsRepo.GetRevenueByMonth(ctx, revenueHistoryMonths); err != nil {
		return nil, err
	}

	return summary, nil
}
