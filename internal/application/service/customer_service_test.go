package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	infraRepo "github.com/thienxuan/dienmay-api/internal/infrastructure/repository"
	"github.com/thienxuan/dienmay-api/pkg/apperror"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Customer{}, &entity.Invoice{}, &entity.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:         "Cong ty TNHH Minh Phat",
		Email:        strPtr("minhphat@example.com"),
		TaxCode:      strPtr("0312345678"),
		CustomerType: enum.CustomerTypeWholesale,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	if customer.ID == uuid.Nil {
		t.Fatal("customer ID was not generated")
	}
	if customer.CustomerType != enum.CustomerTypeWholesale {
		t.Fatalf("customer type = %v, want wholesale", customer.CustomerType)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:  "First",
		Email: strPtr("dup@example.com"),
	})
	if err != nil {
		t.Fatalf("create first customer: %v", err)
	}

	_, err = svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:  "Second",
		Email: strPtr("dup@example.com"),
	})
	if err == nil {
		t.Fatal("expected conflict error for duplicate email")
	}
	if apperror.GetAppError(err).Code != 409 {
		t.Fatalf("expected 409, got %d", apperror.GetAppError(err).Code)
	}
}

func TestCreateCustomerDuplicateTaxCode(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:    "First",
		TaxCode: strPtr("0312345678"),
	})
	if err != nil {
		t.Fatalf("create first customer: %v", err)
	}

	_, err = svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:    "Second",
		TaxCode: strPtr("0312345678"),
	})
	if err == nil {
		t.Fatal("expected conflict error for duplicate tax code")
	}
	if apperror.GetAppError(err).Code != 409 {
		t.Fatalf("expected 409, got %d", apperror.GetAppError(err).Code)
	}
}

func TestUpdateCustomerKeepsOwnEmail(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:  "Nguyen Van B",
		Email: strPtr("b@example.com"),
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	// Re-submitting the same email on update is not a conflict
	updated, err := svc.UpdateCustomer(context.Background(), &UpdateCustomerInput{
		ID:    customer.ID,
		Name:  strPtr("Nguyen Van B Updated"),
		Email: strPtr("b@example.com"),
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.Name != "Nguyen Van B Updated" {
		t.Fatalf("name = %q, want updated name", updated.Name)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:  "Nguyen Van C",
		Phone: strPtr("0901234567"),
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	updated, err := svc.UpdateCustomer(context.Background(), &UpdateCustomerInput{
		ID:      customer.ID,
		Address: strPtr("12 Le Loi, Da Nang"),
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}

	if updated.Phone == nil || *updated.Phone != "0901234567" {
		t.Fatal("untouched field was modified")
	}
	if updated.Address == nil || *updated.Address != "12 Le Loi, Da Nang" {
		t.Fatal("address was not updated")
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404, got %d", apperror.GetAppError(err).Code)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	err := svc.DeleteCustomer(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("expected 404, got %d", apperror.GetAppError(err).Code)
	}
}

func TestListCustomersPagination(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := NewCustomerService(infraRepo.NewCustomerRepository(db))

	for i := 0; i < 25; i++ {
		if _, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
			Name: "Customer",
		}); err != nil {
			t.Fatalf("create customer %d: %v", i, err)
		}
	}

	params := &pagination.PaginationParams{Page: 2, PerPage: 10}
	result, err := svc.ListCustomers(context.Background(), params, "")
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}

	if result.Pagination.Total != 25 {
		t.Fatalf("total = %d, want 25", result.Pagination.Total)
	}
	if len(result.Items) != 10 {
		t.Fatalf("page size = %d, want 10", len(result.Items))
	}
	if result.Pagination.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", result.Pagination.TotalPages)
	}
	if !result.Pagination.HasNext || !result.Pagination.HasPrev {
		t.Fatal("page 2 of 3 should have both next and prev")
	}
}
