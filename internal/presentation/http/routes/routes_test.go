package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thienxuan/dienmay-api/internal/application/service"
	"github.com/thienxuan/dienmay-api/internal/config"
	"github.com/thienxuan/dienmay-api/internal/domain/entity"
	infraRepo "github.com/thienxuan/dienmay-api/internal/infrastructure/repository"
	"github.com/thienxuan/dienmay-api/internal/presentation/http/handler"
	"github.com/thienxuan/dienmay-api/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{}, &entity.Customer{}, &entity.Product{},
		&entity.Invoice{}, &entity.InvoiceItem{}, &entity.IdempotencyKey{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	userRepo := infraRepo.NewUserRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(userRepo, jwtManager)),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		Product:   handler.NewProductHandler(service.NewProductService(productRepo)),
		Invoice:   handler.NewInvoiceHandler(service.NewInvoiceService(invoiceRepo, customerRepo, productRepo)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(analyticsRepo, customerRepo, productRepo, invoiceRepo)),
		User:      handler.NewUserHandler(service.NewUserService(userRepo)),
	}

	cfg := &config.Config{}
	cfg.App.Name = "dienmay-api-test"
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Duration = 1

	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, role string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"password": "secret123",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Tokens.AccessToken == "" {
		t.Fatal("login returned no access token")
	}
	return resp.Data.Tokens.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/customers", "/api/v1/products", "/api/v1/invoices", "/api/v1/dashboard"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: status %d, want 401", path, w.Code)
		}
	}
}

func TestInvoiceFlowOverHTTP(t *testing.T) {
	router, _ := setupRouter(t)
	token := registerAndLogin(t, router, "seller", "user")

	w := doJSON(t, router, http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"name":          "Cua hang Binh Minh",
		"customer_type": "wholesale",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: status %d: %s", w.Code, w.Body.String())
	}
	var customerResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &customerResp); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":            "Noi com dien",
		"retail_price":    600000,
		"wholesale_price": 500000,
		"stock":           20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: status %d: %s", w.Code, w.Body.String())
	}
	var productResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &productResp); err != nil {
		t.Fatalf("decode product: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"customer_id":  customerResp.Data.ID,
		"invoice_type": "wholesale",
		"status":       "paid",
		"items": []map[string]interface{}{
			{"product_id": productResp.Data.ID, "quantity": 2},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: status %d: %s", w.Code, w.Body.String())
	}

	var invoiceResp struct {
		Data struct {
			ID          string `json:"id"`
			InvoiceCode string `json:"invoice_code"`
			TotalAmount int64  `json:"total_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &invoiceResp); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if invoiceResp.Data.TotalAmount != 1000000 {
		t.Fatalf("total = %d, want wholesale 1000000", invoiceResp.Data.TotalAmount)
	}
	if invoiceResp.Data.InvoiceCode == "" {
		t.Fatal("invoice code missing")
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices/"+invoiceResp.Data.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get invoice: status %d: %s", w.Code, w.Body.String())
	}
}

func TestInvoiceListOverHTTP(t *testing.T) {
	router, db := setupRouter(t)
	token := registerAndLogin(t, router, "seller", "user")

	customer := &entity.Customer{Name: "KH"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := &entity.Product{Name: "SP", RetailPrice: 100000}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	for i, status := range []string{"paid", "paid", "debt"} {
		body := map[string]interface{}{
			"customer_id": customer.ID.String(),
			"status":      status,
			"items": []map[string]interface{}{
				{"product_id": product.ID.String(), "quantity": 1},
			},
		}
		if status == "debt" {
			body["debt_end_date"] = time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
		}
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create invoice %d: status %d: %s", i, w.Code, w.Body.String())
		}
	}

	var listResp struct {
		Data struct {
			Items      []json.RawMessage `json:"items"`
			Pagination struct {
				CurrentPage int   `json:"current_page"`
				PerPage     int   `json:"per_page"`
				Total       int64 `json:"total"`
				TotalPages  int   `json:"total_pages"`
			} `json:"pagination"`
		} `json:"data"`
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/invoices?page=1&per_page=2", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list invoices: status %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Data.Items) != 2 {
		t.Fatalf("page 1 items = %d, want 2", len(listResp.Data.Items))
	}
	if listResp.Data.Pagination.Total != 3 || listResp.Data.Pagination.TotalPages != 2 {
		t.Fatalf("pagination = %+v, want total 3 over 2 pages", listResp.Data.Pagination)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices?status=debt", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list debt invoices: status %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Data.Items) != 1 {
		t.Fatalf("debt filter items = %d, want 1", len(listResp.Data.Items))
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices?status=overdue", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status filter: status %d, want 400", w.Code)
	}
}

func TestInvoiceCreateIdempotencyReplay(t *testing.T) {
	router, db := setupRouter(t)
	token := registerAndLogin(t, router, "seller", "user")

	customer := &entity.Customer{Name: "KH"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := &entity.Product{Name: "SP", RetailPrice: 100000}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	body := map[string]interface{}{
		"customer_id": customer.ID.String(),
		"status":      "paid",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	}

	send := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "retry-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first create: status %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("replay: status %d", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatal("replay was not served from the idempotency store")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("replayed response differs from original")
	}

	var count int64
	db.Model(&entity.Invoice{}).Count(&count)
	if count != 1 {
		t.Fatalf("invoice count = %d, want 1 (duplicate submit must not create twice)", count)
	}
}

func TestUsersRoutesAreAdminOnly(t *testing.T) {
	router, _ := setupRouter(t)

	userToken := registerAndLogin(t, router, "plain", "user")
	w := doJSON(t, router, http.MethodGet, "/api/v1/users", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin GET /users: status %d, want 403", w.Code)
	}

	adminToken := registerAndLogin(t, router, "boss", "admin")
	w = doJSON(t, router, http.MethodGet, "/api/v1/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin GET /users: status %d: %s", w.Code, w.Body.String())
	}
}

func TestInvoiceValidationOverHTTP(t *testing.T) {
	router, db := setupRouter(t)
	token := registerAndLogin(t, router, "seller", "user")

	customer := &entity.Customer{Name: "KH"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := &entity.Product{Name: "SP", RetailPrice: 100000}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"customer_id": customer.ID.String(),
		"status":      "paid",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1, "discount": 150},
		},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid discount: status %d, want 422: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"customer_id": customer.ID.String(),
		"status":      "debt",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("debt without end date: status %d, want 422: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"customer_id":  customer.ID.String(),
		"invoice_type": "wholsale",
		"status":       "paid",
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("misspelled invoice type: status %d, want 422: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"customer_id":   customer.ID.String(),
		"status":        "debt",
		"debt_end_date": time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("valid debt invoice: status %d: %s", w.Code, w.Body.String())
	}
}
