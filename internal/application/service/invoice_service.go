package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"github.com/thienxuan/dienmay-api/internal/domain/repository"
	"github.com/thienxuan/dienmay-api/pkg/apperror"
	"github.com/thienxuan/dienmay-api/pkg/invoicecode"
	"github.com/thienxuan/dienmay-api/pkg/money"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
)

// maxCodeAttempts bounds the invoice-code collision retry loop
const maxCodeAttempts = 10

// InvoiceService orchestrates invoice creation and updates: it resolves
// customer and product references, snapshots prices by invoice type, computes
// totals and issues unique invoice codes.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateInvoiceItemInput represents an item in a create request. The unit
// price is resolved from the product's price list, never from the client.
type CreateInvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Discount  float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerID    uuid.UUID
	InvoiceType   enum.InvoiceType
	InvoiceDate   *time.Time
	Status        enum.InvoiceStatus
	DebtStartDate *time.Time
	DebtEndDate   *time.Time
	Items         []CreateInvoiceItemInput
}

// CreateInvoice creates a new invoice with its items
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if !input.InvoiceType.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "invoice_type", Message: "must be retail, wholesale or ecommerce"},
		})
	}
	if !input.Status.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "must be paid or debt"},
		})
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	for _, item := range input.Items {
		if err := validateItem(item.Quantity, item.Discount); err != nil {
			return nil, err
		}
	}

	// Batch fetch all products in one query
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Snapshot unit prices by invoice type: wholesale invoices take the
	// wholesale price, retail and ecommerce take the retail price.
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	lineItems := make([]money.Item, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		price := product.RetailPrice
		if input.InvoiceType == enum.InvoiceTypeWholesale {
			price = product.WholesalePrice
		}

		items = append(items, entity.InvoiceItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			Discount:  item.Discount,
		})
		lineItems = append(lineItems, money.Item{
			Price:    price,
			Quantity: item.Quantity,
			Discount: item.Discount,
		})
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice := &entity.Invoice{
		CustomerID:  customer.ID,
		InvoiceType: input.InvoiceType,
		InvoiceDate: invoiceDate,
		TotalAmount: money.InvoiceTotal(lineItems),
		Status:      input.Status,
		Items:       items,
	}

	if input.Status == enum.InvoiceStatusDebt {
		if input.DebtEndDate == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "debt_end_date", Message: "required when status is debt"},
			})
		}
		start := time.Now()
		if input.DebtStartDate != nil {
			start = *input.DebtStartDate
		}
		invoice.DebtStartDate = &start
		invoice.DebtEndDate = input.DebtEndDate
	}

	code, err := s.generateCode(ctx, input.InvoiceType, invoiceDate)
	if err != nil {
		return nil, err
	}
	invoice.InvoiceCode = code

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// UpdateInvoiceItemInput represents an item in an update request. The price
// is the snapshot the invoice already carries (or a corrected one); it is not
// re-read from the product.
type UpdateInvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     int64
	Discount  float64
}

// UpdateInvoiceInput represents the update invoice input
type UpdateInvoiceInput struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	InvoiceType   *enum.InvoiceType
	InvoiceDate   *time.Time
	Status        *enum.InvoiceStatus
	DebtStartDate *time.Time
	DebtEndDate   *time.Time
	Items         []UpdateInvoiceItemInput
}

// UpdateInvoice applies a partial update. When items are provided the total
// is fully recomputed; there is no incremental update. Concurrent updates to
// the same invoice are not serialized: last write wins.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		invoice.CustomerID = customer.ID
	}

	if input.InvoiceType != nil {
		if !input.InvoiceType.Valid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "invoice_type", Message: "must be retail, wholesale or ecommerce"},
			})
		}
		invoice.InvoiceType = *input.InvoiceType
	}

	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "status", Message: "must be paid or debt"},
			})
		}
		invoice.Status = *input.Status
	}

	// Validate everything before the first write so a rejected update
	// leaves the stored invoice and its items untouched.
	var items []entity.InvoiceItem
	var lineItems []money.Item
	if input.Items != nil {
		items = make([]entity.InvoiceItem, 0, len(input.Items))
		lineItems = make([]money.Item, 0, len(input.Items))
		for _, item := range input.Items {
			if err := validateItem(item.Quantity, item.Discount); err != nil {
				return nil, err
			}
			items = append(items, entity.InvoiceItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Discount:  item.Discount,
			})
			lineItems = append(lineItems, money.Item{
				Price:    item.Price,
				Quantity: item.Quantity,
				Discount: item.Discount,
			})
		}
	}

	if invoice.Status == enum.InvoiceStatusDebt {
		if input.DebtEndDate != nil {
			invoice.DebtEndDate = input.DebtEndDate
		}
		if invoice.DebtEndDate == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "debt_end_date", Message: "required when status is debt"},
			})
		}
		if input.DebtStartDate != nil {
			invoice.DebtStartDate = input.DebtStartDate
		}
		if invoice.DebtStartDate == nil {
			now := time.Now()
			invoice.DebtStartDate = &now
		}
	} else {
		// Leaving debt clears the debt window
		invoice.DebtStartDate = nil
		invoice.DebtEndDate = nil
	}

	if input.Items != nil {
		if err := s.invoiceRepo.ReplaceItems(ctx, invoice.ID, items); err != nil {
			return nil, err
		}
		invoice.TotalAmount = money.InvoiceTotal(lineItems)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its customer and items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// DeleteInvoice deletes an invoice and its items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// generateCode issues a unique invoice code, retrying with a fresh random
// suffix on collision up to maxCodeAttempts times.
func (s *InvoiceService) generateCode(ctx context.Context, invoiceType enum.InvoiceType, date time.Time) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := invoicecode.Generate(invoiceType.CodeTag(), date)
		exists, err := s.invoiceRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperror.ErrCodeGenerationExhausted
}

func validateItem(quantity int, discount float64) error {
	var fieldErrors []apperror.FieldError
	if quantity < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "quantity", Message: "must be at least 1",
		})
	}
	if discount < 0 || discount > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "discount", Message: "must be between 0 and 100",
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
