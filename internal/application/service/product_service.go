package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	"github.com/thienxuan/dienmay-api/internal/domain/repository"
	"github.com/thienxuan/dienmay-api/pkg/apperror"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
)

// ProductService handles product business logic
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name           string
	Code           *string
	ImportPrice    int64
	RetailPrice    int64
	WholesalePrice int64
	Stock          int
}

// CreateProduct creates a new product with derived totals computed
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validatePrices(input.ImportPrice, input.RetailPrice, input.WholesalePrice, input.Stock); err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != "" {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already in use")
		}
	}

	product := &entity.Product{
		Name:           input.Name,
		Code:           input.Code,
		ImportPrice:    input.ImportPrice,
		RetailPrice:    input.RetailPrice,
		WholesalePrice: input.WholesalePrice,
		Stock:          input.Stock,
	}
	product.RecalculateTotals()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID             uuid.UUID
	Name           *string
	Code           *string
	ImportPrice    *int64
	RetailPrice    *int64
	WholesalePrice *int64
	Stock          *int
}

// UpdateProduct applies a partial update and recomputes the derived totals
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil && *input.Code != "" {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already in use")
		}
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Code != nil {
		product.Code = input.Code
	}
	if input.ImportPrice != nil {
		product.ImportPrice = *input.ImportPrice
	}
	if input.RetailPrice != nil {
		product.RetailPrice = *input.RetailPrice
	}
	if input.WholesalePrice != nil {
		product.WholesalePrice = *input.WholesalePrice
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := validatePrices(product.ImportPrice, product.RetailPrice, product.WholesalePrice, product.Stock); err != nil {
		return nil, err
	}

	product.RecalculateTotals()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with search and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// DeleteProduct deletes a product. Invoice items keep their price snapshots,
// so past invoices are unaffected.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

func validatePrices(importPrice, retailPrice, wholesalePrice int64, stock int) error {
	var fieldErrors []apperror.FieldError
	if importPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "import_price", Message: "must not be negative"})
	}
	if retailPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "retail_price", Message: "must not be negative"})
	}
	if wholesalePrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "wholesale_price", Message: "must not be negative"})
	}
	if stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
