package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
)

// InvoiceFilterParams holds filtering options for listing invoices
type InvoiceFilterParams struct {
	Pagination pagination.PaginationParams
	Search     string // matched against invoice_code
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetWithItems loads the invoice with its customer, items and item products.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// ReplaceItems deletes the invoice's current items and inserts the given ones.
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []entity.InvoiceItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	Count(ctx context.Context) (int64, error)
}
