package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/application/service"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"github.com/thienxuan/dienmay-api/internal/domain/repository"
	"github.com/thienxuan/dienmay-api/internal/presentation/http/dto/response"
	"github.com/thienxuan/dienmay-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}
	params.Pagination.Validate()

	if statusStr := c.Query("status"); statusStr != "" {
		var status enum.InvoiceStatus
		switch statusStr {
		case "paid":
			status = enum.InvoiceStatusPaid
		case "debt":
			status = enum.InvoiceStatusDebt
		default:
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &start
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		params.EndDate = &end
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice with its items
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
		InvoiceType   enum.InvoiceType   `json:"invoice_type"`
		InvoiceDate   *time.Time         `json:"invoice_date"`
		Status        enum.InvoiceStatus `json:"status"`
		DebtStartDate *time.Time         `json:"debt_start_date"`
		DebtEndDate   *time.Time         `json:"debt_end_date"`
		Items         []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity"`
			Discount  float64   `json:"discount"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.CreateInvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateInvoiceItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerID:    req.CustomerID,
		InvoiceType:   req.InvoiceType,
		InvoiceDate:   req.InvoiceDate,
		Status:        req.Status,
		DebtStartDate: req.DebtStartDate,
		DebtEndDate:   req.DebtEndDate,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		CustomerID    *uuid.UUID          `json:"customer_id"`
		InvoiceType   *enum.InvoiceType   `json:"invoice_type"`
		InvoiceDate   *time.Time          `json:"invoice_date"`
		Status        *enum.InvoiceStatus `json:"status"`
		DebtStartDate *time.Time          `json:"debt_start_date"`
		DebtEndDate   *time.Time          `json:"debt_end_date"`
		Items         []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity"`
			Price     int64     `json:"price"`
			Discount  float64   `json:"discount"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateInvoiceInput{
		ID:            id,
		CustomerID:    req.CustomerID,
		InvoiceType:   req.InvoiceType,
		InvoiceDate:   req.InvoiceDate,
		Status:        req.Status,
		DebtStartDate: req.DebtStartDate,
		DebtEndDate:   req.DebtEndDate,
	}

	if req.Items != nil {
		input.Items = make([]service.UpdateInvoiceItemInput, len(req.Items))
		for i, item := range req.Items {
			input.Items[i] = service.UpdateInvoiceItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Discount:  item.Discount,
			}
		}
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice and its items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseDate accepts RFC3339 timestamps or plain dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
