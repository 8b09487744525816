package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"github.com/thienxuan/dienmay-api/internal/domain/repository"
	"github.com/thienxuan/dienmay-api/pkg/apperror"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	TaxCode      *string
	CustomerType enum.CustomerType
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if !input.CustomerType.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_type", Message: "must be retail or wholesale"},
		})
	}

	if err := s.checkConflicts(ctx, input.Email, input.TaxCode, uuid.Nil); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		TaxCode:      input.TaxCode,
		CustomerType: input.CustomerType,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID           uuid.UUID
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	TaxCode      *string
	CustomerType *enum.CustomerType
}

// UpdateCustomer applies a partial update to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if err := s.checkConflicts(ctx, input.Email, input.TaxCode, customer.ID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.TaxCode != nil {
		customer.TaxCode = input.TaxCode
	}
	if input.CustomerType != nil {
		if !input.CustomerType.Valid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "customer_type", Message: "must be retail or wholesale"},
			})
		}
		customer.CustomerType = *input.CustomerType
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// DeleteCustomer deletes a customer. Invoices referencing the customer are
// left in place and keep their customer_id.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// checkConflicts rejects an email or tax code already held by another
// customer. selfID excludes the customer being updated from the check.
func (s *CustomerService) checkConflicts(ctx context.Context, email, taxCode *string, selfID uuid.UUID) error {
	if email != nil && *email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return apperror.NewConflictError("Email already in use by another customer")
		}
	}
	if taxCode != nil && *taxCode != "" {
		existing, err := s.customerRepo.GetByTaxCode(ctx, *taxCode)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return apperror.NewConflictError("Tax code already in use by another customer")
		}
	}
	return nil
}
